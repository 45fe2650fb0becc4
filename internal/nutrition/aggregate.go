// Package nutrition computes per-serving nutrition from resolved recipe links
// and scales recipes to a calorie target with kitchen-practical rounding.
// Everything here is a pure in-memory computation.
package nutrition

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"wasfa/models"
)

// Summary is the aggregated per-serving nutrition of a recipe.
type Summary struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64

	Vegetarian bool
	Vegan      bool
	GlutenFree bool
	DairyFree  bool

	// Unmatched holds the distinct raw names that resolved to nothing,
	// in first-seen order.
	Unmatched []string
}

// NeedsReview reports whether any line failed to resolve.
func (s Summary) NeedsReview() bool {
	return len(s.Unmatched) > 0
}

// AdminNotes renders the unmatched raw names as a comma-joined note.
func (s Summary) AdminNotes() string {
	if len(s.Unmatched) == 0 {
		return ""
	}
	return "unmatched: " + strings.Join(s.Unmatched, ", ")
}

// Aggregate sums the weighted macro contributions of every matched ingredient
// link. A link's contribution is macros x (quantity / serving_size); a nil
// quantity means the ingredient is consumed at its own reference serving.
// Spice links and unmatched links contribute zero. The sum is deterministic
// and order-independent.
func Aggregate(links []models.RecipeIngredient, byID map[uint]models.Ingredient) Summary {
	summary := Summary{
		Vegetarian: true,
		Vegan:      true,
		GlutenFree: true,
		DairyFree:  true,
	}

	var calories, protein, carbs, fat float64
	var unmatched []string

	for _, link := range links {
		if !link.IsMatched {
			if strings.TrimSpace(link.RawName) != "" {
				unmatched = append(unmatched, link.RawName)
			}
			continue
		}
		if link.IsSpice || link.IngredientID == nil {
			continue
		}

		ingredient, ok := byID[*link.IngredientID]
		if !ok || ingredient.ServingSize <= 0 {
			continue
		}

		multiplier := 1.0
		if link.Quantity != nil {
			multiplier = *link.Quantity / ingredient.ServingSize
		}

		calories += ingredient.Calories * multiplier
		protein += ingredient.Protein * multiplier
		carbs += ingredient.Carbs * multiplier
		fat += ingredient.Fat * multiplier

		applyDietaryFlags(&summary, ingredient)
	}

	summary.Calories = math.Round(calories)
	summary.Protein = round1(protein)
	summary.Carbs = round1(carbs)
	summary.Fat = round1(fat)
	summary.Unmatched = lo.Uniq(unmatched)

	return summary
}

// ApplyToRecipe writes the aggregated values onto a recipe, elevating its
// status to needs_review when any line is unmatched.
func ApplyToRecipe(recipe *models.Recipe, summary Summary) {
	recipe.Calories = summary.Calories
	recipe.Protein = summary.Protein
	recipe.Carbs = summary.Carbs
	recipe.Fat = summary.Fat
	recipe.Vegetarian = summary.Vegetarian
	recipe.Vegan = summary.Vegan
	recipe.GlutenFree = summary.GlutenFree
	recipe.DairyFree = summary.DairyFree

	if summary.NeedsReview() {
		recipe.Status = models.RecipeStatusNeedsReview
		recipe.AdminNotes = summary.AdminNotes()
	} else {
		recipe.Status = models.RecipeStatusComplete
		recipe.AdminNotes = ""
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Food groups that break the derived dietary flags. The flags are advisory:
// unmatched lines cannot contribute, so a needs_review recipe keeps whatever
// the matched lines imply.
var (
	animalGroups = map[string]struct{}{
		"meat": {}, "poultry": {}, "seafood": {}, "fish": {},
	}
	dairyGroups = map[string]struct{}{
		"dairy": {},
	}
	eggGroups = map[string]struct{}{
		"eggs": {}, "egg": {},
	}
	glutenSubgroups = map[string]struct{}{
		"wheat": {}, "barley": {}, "rye": {}, "bulgur": {}, "semolina": {}, "couscous": {},
	}
)

func applyDietaryFlags(summary *Summary, ingredient models.Ingredient) {
	group := strings.ToLower(strings.TrimSpace(ingredient.FoodGroup))
	subgroup := strings.ToLower(strings.TrimSpace(ingredient.Subgroup))

	if _, ok := animalGroups[group]; ok {
		summary.Vegetarian = false
		summary.Vegan = false
	}
	if _, ok := dairyGroups[group]; ok {
		summary.DairyFree = false
		summary.Vegan = false
	}
	if _, ok := eggGroups[group]; ok {
		summary.Vegan = false
	}
	if group == "grains" {
		if _, ok := glutenSubgroups[subgroup]; ok {
			summary.GlutenFree = false
		}
	}
}
