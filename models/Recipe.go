package models

import (
	"gorm.io/gorm"
)

// Recipe status values.
const (
	RecipeStatusDraft       = "draft"
	RecipeStatusComplete    = "complete"
	RecipeStatusNeedsReview = "needs_review"
	RecipeStatusError       = "error"
)

// Recipe holds an authored or imported recipe together with its cached
// per-serving nutrition. The dietary flags are derived from the matched
// ingredients and are advisory, not authoritative.
type Recipe struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	MealType string `json:"meal_type"`
	Steps    string `gorm:"type:text" json:"steps"`
	Status   string `gorm:"not null;default:draft" json:"status"`

	// Cached per-serving nutrition, refreshed on import and audit.
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`

	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`

	AdminNotes  string             `gorm:"type:text" json:"admin_notes"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

// ValidRecipeStatus reports whether value is one of the recognized statuses.
func ValidRecipeStatus(value string) bool {
	switch value {
	case RecipeStatusDraft, RecipeStatusComplete, RecipeStatusNeedsReview, RecipeStatusError:
		return true
	}
	return false
}
