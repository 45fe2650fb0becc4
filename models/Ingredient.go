package models

import (
	"gorm.io/gorm"
)

// Ingredient is a canonical food record. Macros are stored per ServingSize of
// ServingUnit, which is the serving basis every quantity calculation divides by.
type Ingredient struct {
	gorm.Model
	Name        string            `gorm:"uniqueIndex;not null" json:"name"`
	NameAlt     string            `json:"name_alt"`
	Aliases     []IngredientAlias `gorm:"foreignKey:IngredientID" json:"aliases"`
	FoodGroup   string            `json:"food_group"`
	Subgroup    string            `json:"subgroup"`
	ServingSize float64           `json:"serving_size"`
	ServingUnit string            `json:"serving_unit"`
	Calories    float64           `json:"calories"`
	Protein     float64           `json:"protein"`
	Carbs       float64           `json:"carbs"`
	Fat         float64           `json:"fat"`
}

// IngredientAlias holds an alternative name for an Ingredient, in either script.
type IngredientAlias struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	IngredientID uint
}

// CaloriesPerUnit returns the calorie density per one ServingUnit, or 0 when
// the serving basis is missing.
func (i Ingredient) CaloriesPerUnit() float64 {
	if i.ServingSize <= 0 {
		return 0
	}
	return i.Calories / i.ServingSize
}
