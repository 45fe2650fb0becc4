package models

import (
	"gorm.io/gorm"
)

// RecipeIngredient is the junction row for one raw ingredient line of a recipe.
type RecipeIngredient struct {
	gorm.Model
	RecipeID   uint     `gorm:"not null;index" json:"recipe_id"`
	RawName    string   `gorm:"not null" json:"raw_name"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       string   `json:"unit"`
	IsSpice    bool     `gorm:"not null;default:false" json:"is_spice"`
	IsOptional bool     `gorm:"not null;default:false" json:"is_optional"`
	SortOrder  int      `gorm:"not null" json:"sort_order"`

	// --- Resolved reference ---
	// At most one of these is non-null; IsMatched is true iff exactly one is.
	IngredientID *uint `json:"ingredient_id,omitempty"`
	SpiceID      *uint `json:"spice_id,omitempty"`
	IsMatched    bool  `gorm:"not null;default:false" json:"is_matched"`

	// --- Preloadable data ---
	// Pointers so they can be null when the line is unmatched.
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Spice      *Spice      `gorm:"foreignKey:SpiceID" json:"spice,omitempty"`

	Notes string `gorm:"type:text" json:"notes"`
}

// ConsistentMatchFlag reports whether IsMatched agrees with the resolved
// references: true iff exactly one of IngredientID/SpiceID is set.
func (l RecipeIngredient) ConsistentMatchFlag() bool {
	return l.IsMatched == ((l.IngredientID != nil) != (l.SpiceID != nil))
}
