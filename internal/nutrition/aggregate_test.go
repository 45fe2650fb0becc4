package nutrition

import (
	"strings"
	"testing"

	"wasfa/models"
)

func qty(v float64) *float64 { return &v }

func ref(id uint) *uint { return &id }

func corpus() map[uint]models.Ingredient {
	rice := models.Ingredient{Name: "Rice", FoodGroup: "grains", Subgroup: "long grain", ServingSize: 100, ServingUnit: "g", Calories: 130, Protein: 2.7, Carbs: 28.2, Fat: 0.3}
	rice.ID = 1
	chicken := models.Ingredient{Name: "Chicken Breast", FoodGroup: "poultry", ServingSize: 100, ServingUnit: "g", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}
	chicken.ID = 2
	yogurt := models.Ingredient{Name: "Yogurt", FoodGroup: "dairy", ServingSize: 100, ServingUnit: "g", Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4}
	yogurt.ID = 3
	return map[uint]models.Ingredient{1: rice, 2: chicken, 3: yogurt}
}

func TestAggregateSumsMatchedContributions(t *testing.T) {
	t.Parallel()

	links := []models.RecipeIngredient{
		{RawName: "rice", Quantity: qty(200), IngredientID: ref(1), IsMatched: true},
		{RawName: "chicken", Quantity: qty(150), IngredientID: ref(2), IsMatched: true},
		{RawName: "cumin", SpiceID: ref(9), IsSpice: true, IsMatched: true},
	}

	got := Aggregate(links, corpus())

	// 130*2 + 165*1.5 = 507.5 rounds to 508.
	if got.Calories != 508 {
		t.Fatalf("Calories = %v, want 508", got.Calories)
	}
	// 2.7*2 + 31*1.5 = 51.9
	if got.Protein != 51.9 {
		t.Fatalf("Protein = %v, want 51.9", got.Protein)
	}
	if got.NeedsReview() {
		t.Fatalf("fully matched recipe should not need review: %+v", got)
	}
}

func TestAggregateNilQuantityUsesServingBasis(t *testing.T) {
	t.Parallel()

	links := []models.RecipeIngredient{
		{RawName: "rice", IngredientID: ref(1), IsMatched: true},
	}

	got := Aggregate(links, corpus())
	if got.Calories != 130 {
		t.Fatalf("Calories = %v, want the reference serving's 130", got.Calories)
	}
}

func TestAggregateUnmatchedContributesZero(t *testing.T) {
	t.Parallel()

	links := []models.RecipeIngredient{
		{RawName: "rice", Quantity: qty(100), IngredientID: ref(1), IsMatched: true},
		{RawName: "xyz-unknown-food", Quantity: qty(50)},
		{RawName: "xyz-unknown-food"},
	}

	got := Aggregate(links, corpus())
	if got.Calories != 130 {
		t.Fatalf("Calories = %v, want 130", got.Calories)
	}
	if !got.NeedsReview() {
		t.Fatal("recipe with unmatched line must need review")
	}
	if len(got.Unmatched) != 1 || got.Unmatched[0] != "xyz-unknown-food" {
		t.Fatalf("Unmatched = %v, want one distinct entry", got.Unmatched)
	}
	if !strings.Contains(got.AdminNotes(), "xyz-unknown-food") {
		t.Fatalf("AdminNotes() = %q", got.AdminNotes())
	}
}

func TestAggregateDerivesDietaryFlags(t *testing.T) {
	t.Parallel()

	links := []models.RecipeIngredient{
		{RawName: "chicken", Quantity: qty(100), IngredientID: ref(2), IsMatched: true},
		{RawName: "yogurt", Quantity: qty(100), IngredientID: ref(3), IsMatched: true},
	}

	got := Aggregate(links, corpus())
	if got.Vegetarian || got.Vegan {
		t.Fatalf("poultry should break vegetarian/vegan: %+v", got)
	}
	if got.DairyFree {
		t.Fatalf("dairy should break dairy-free: %+v", got)
	}
	if !got.GlutenFree {
		t.Fatalf("no gluten grain present, should stay gluten-free: %+v", got)
	}
}

func TestApplyToRecipe(t *testing.T) {
	t.Parallel()

	recipe := models.Recipe{Name: "test", Status: models.RecipeStatusDraft}

	ApplyToRecipe(&recipe, Summary{Calories: 300, Protein: 10, Vegetarian: true, Vegan: true, GlutenFree: true, DairyFree: true})
	if recipe.Status != models.RecipeStatusComplete || recipe.AdminNotes != "" {
		t.Fatalf("clean summary should complete the recipe: %+v", recipe)
	}

	ApplyToRecipe(&recipe, Summary{Calories: 300, Unmatched: []string{"xyz-unknown-food"}})
	if recipe.Status != models.RecipeStatusNeedsReview {
		t.Fatalf("unmatched summary should elevate status, got %q", recipe.Status)
	}
	if !strings.Contains(recipe.AdminNotes, "xyz-unknown-food") {
		t.Fatalf("AdminNotes = %q", recipe.AdminNotes)
	}
}
