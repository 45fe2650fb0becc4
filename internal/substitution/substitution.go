// Package substitution proposes calorie-equivalent ingredient swaps scoped to
// the source ingredient's food group.
package substitution

import (
	"math"
	"sort"
	"strings"

	"wasfa/internal/index"
	"wasfa/internal/nutrition"
	"wasfa/models"
)

// MaxCandidates bounds the returned list; subgroup neighbors sort first, so
// the cap trims the least relevant tail.
const MaxCandidates = 25

// Option is one ranked substitution candidate. A zero SuggestedAmount with a
// zero CalorieDiffPercent is a degenerate result (the candidate has no usable
// calorie density) and is not a real suggestion.
type Option struct {
	Candidate          *models.Ingredient `json:"candidate"`
	SuggestedAmount    float64            `json:"suggested_amount"`
	CalorieDiffPercent float64            `json:"calorie_diff_percent"`
	SameSubgroup       bool               `json:"same_subgroup"`
}

// Usable reports whether the option carries an actionable suggested amount.
func (o Option) Usable() bool {
	return o.SuggestedAmount > 0
}

// Recommend returns calorie-equivalent alternatives for consuming
// targetAmount of the source ingredient, ranked by taxonomic similarity:
// same-subgroup candidates first, then alphabetically by name. An ingredient
// without a food group has no candidate pool and yields an empty list.
func Recommend(idx *index.Index, sourceID uint, targetAmount float64) []Option {
	source, ok := idx.IngredientByID(sourceID)
	if !ok || strings.TrimSpace(source.FoodGroup) == "" {
		return nil
	}

	targetCalories := source.CaloriesPerUnit() * targetAmount

	options := make([]Option, 0)
	for _, candidate := range idx.Ingredients() {
		if candidate.ID == source.ID {
			continue
		}
		if !strings.EqualFold(candidate.FoodGroup, source.FoodGroup) {
			continue
		}

		option := Option{
			Candidate:    candidate,
			SameSubgroup: sameSubgroup(source, candidate),
		}

		if perUnit := candidate.CaloriesPerUnit(); perUnit > 0 && targetCalories > 0 {
			option.SuggestedAmount = nutrition.RoundForMeasuring(targetCalories / perUnit)
			option.CalorieDiffPercent = math.Round((option.SuggestedAmount*perUnit - targetCalories) / targetCalories * 100)
		}

		options = append(options, option)
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].SameSubgroup != options[j].SameSubgroup {
			return options[i].SameSubgroup
		}
		return options[i].Candidate.Name < options[j].Candidate.Name
	})

	if len(options) > MaxCandidates {
		options = options[:MaxCandidates]
	}
	return options
}

func sameSubgroup(a, b *models.Ingredient) bool {
	if strings.TrimSpace(a.Subgroup) == "" {
		return false
	}
	return strings.EqualFold(a.Subgroup, b.Subgroup)
}
