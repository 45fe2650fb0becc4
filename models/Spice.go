package models

import (
	"gorm.io/gorm"
)

// Spice is a canonical seasoning record. Spices are matched by name like
// ingredients but never contribute macros to a recipe.
type Spice struct {
	gorm.Model
	Name      string       `gorm:"uniqueIndex;not null" json:"name"`
	NameAlt   string       `json:"name_alt"`
	Aliases   []SpiceAlias `gorm:"foreignKey:SpiceID" json:"aliases"`
	IsDefault bool         `gorm:"not null;default:false" json:"is_default"`
}

// SpiceAlias holds an alternative name for a Spice.
type SpiceAlias struct {
	gorm.Model
	Name    string `gorm:"not null" json:"name"`
	SpiceID uint
}
