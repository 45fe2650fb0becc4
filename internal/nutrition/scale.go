package nutrition

import (
	"math"

	"wasfa/models"
)

// ScaleOptions selects how the scale factor is derived. TargetCalories wins
// when both are provided and the base calories are positive.
type ScaleOptions struct {
	TargetCalories *float64
	ScaleFactor    *float64
}

// ScaledItem is one recipe line with its display quantity after scaling.
type ScaledItem struct {
	RawName         string   `json:"raw_name"`
	Unit            string   `json:"unit"`
	IsSpice         bool     `json:"is_spice"`
	IsOptional      bool     `json:"is_optional"`
	Quantity        *float64 `json:"quantity,omitempty"`
	DisplayQuantity *float64 `json:"display_quantity,omitempty"`
}

// ScaledRecipe is the result of scaling a recipe's cached nutrition.
type ScaledRecipe struct {
	ScaleFactor      float64      `json:"scale_factor"`
	OriginalCalories float64      `json:"original_calories"`
	ScaledCalories   float64      `json:"scaled_calories"`
	Items            []ScaledItem `json:"items"`
}

// RoundForMeasuring approximates a quantity to a value that is easy to
// measure in a kitchen: below 10 the nearest integer, from 10 up the nearest
// multiple of 5. This is a fixed display policy, not statistical rounding.
func RoundForMeasuring(x float64) float64 {
	if x < 10 {
		return math.Round(x)
	}
	return math.Round(x/5) * 5
}

// Scale applies a calorie target or explicit factor to a recipe's cached
// per-serving calories and its links. Scaling with factor 1 reproduces the
// rounded base values exactly.
func Scale(baseCalories float64, links []models.RecipeIngredient, opts ScaleOptions) ScaledRecipe {
	factor := 1.0
	switch {
	case opts.TargetCalories != nil && baseCalories > 0:
		factor = *opts.TargetCalories / baseCalories
	case opts.ScaleFactor != nil && *opts.ScaleFactor > 0:
		factor = *opts.ScaleFactor
	}

	items := make([]ScaledItem, 0, len(links))
	for _, link := range links {
		item := ScaledItem{
			RawName:    link.RawName,
			Unit:       link.Unit,
			IsSpice:    link.IsSpice,
			IsOptional: link.IsOptional,
			Quantity:   link.Quantity,
		}
		if link.Quantity != nil {
			display := RoundForMeasuring(*link.Quantity * factor)
			item.DisplayQuantity = &display
		}
		items = append(items, item)
	}

	return ScaledRecipe{
		ScaleFactor:      round2(factor),
		OriginalCalories: baseCalories,
		ScaledCalories:   math.Round(baseCalories * factor),
		Items:            items,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
