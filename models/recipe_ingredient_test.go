package models

import "testing"

func ptr(v uint) *uint { return &v }

func TestConsistentMatchFlag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		link RecipeIngredient
		want bool
	}{
		{"matched ingredient", RecipeIngredient{IngredientID: ptr(1), IsMatched: true}, true},
		{"matched spice", RecipeIngredient{SpiceID: ptr(2), IsMatched: true}, true},
		{"unmatched", RecipeIngredient{IsMatched: false}, true},
		{"flag without reference", RecipeIngredient{IsMatched: true}, false},
		{"reference without flag", RecipeIngredient{IngredientID: ptr(1), IsMatched: false}, false},
		{"both references", RecipeIngredient{IngredientID: ptr(1), SpiceID: ptr(2), IsMatched: true}, false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.link.ConsistentMatchFlag(); got != tt.want {
				t.Fatalf("ConsistentMatchFlag() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestValidRecipeStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"draft", RecipeStatusDraft, true},
		{"complete", RecipeStatusComplete, true},
		{"needs review", RecipeStatusNeedsReview, true},
		{"error", RecipeStatusError, true},
		{"unknown", "archived", false},
		{"empty", "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidRecipeStatus(tt.value); got != tt.want {
				t.Fatalf("ValidRecipeStatus(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}

func TestCaloriesPerUnit(t *testing.T) {
	t.Parallel()

	if got := (Ingredient{Calories: 100, ServingSize: 100}).CaloriesPerUnit(); got != 1 {
		t.Fatalf("CaloriesPerUnit() = %v, want 1", got)
	}
	if got := (Ingredient{Calories: 50}).CaloriesPerUnit(); got != 0 {
		t.Fatalf("CaloriesPerUnit() with zero serving basis = %v, want 0", got)
	}
}
