package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "wasfa/internal/log"
	"wasfa/models"
)

// New returns an in-memory sqlite database seeded with a small bilingual
// corpus and one recipe, for local development without Postgres.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:wasfa-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Ingredient{},
		&models.IngredientAlias{},
		&models.Spice{},
		&models.SpiceAlias{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	rice := models.Ingredient{
		Name:        "Basmati Rice",
		NameAlt:     "أرز بسمتي",
		Aliases:     []models.IngredientAlias{{Name: "White Rice"}},
		FoodGroup:   "grains",
		Subgroup:    "long grain",
		ServingSize: 100,
		ServingUnit: "g",
		Calories:    130,
		Protein:     2.7,
		Carbs:       28.2,
		Fat:         0.3,
	}

	chicken := models.Ingredient{
		Name:        "Chicken Breast",
		NameAlt:     "صدر دجاج",
		FoodGroup:   "poultry",
		ServingSize: 100,
		ServingUnit: "g",
		Calories:    165,
		Protein:     31,
		Fat:         3.6,
	}

	bulgur := models.Ingredient{
		Name:        "Bulgur",
		NameAlt:     "برغل",
		FoodGroup:   "grains",
		Subgroup:    "wheat",
		ServingSize: 100,
		ServingUnit: "g",
		Calories:    83,
		Protein:     3.1,
		Carbs:       18.6,
		Fat:         0.2,
	}

	ingredients := []*models.Ingredient{&rice, &chicken, &bulgur}
	for _, ingredient := range ingredients {
		if err := db.WithContext(ctx).Create(ingredient).Error; err != nil {
			return err
		}
	}

	cumin := models.Spice{
		Name:      "Cumin",
		NameAlt:   "كمون",
		Aliases:   []models.SpiceAlias{{Name: "Ground Cumin"}},
		IsDefault: true,
	}
	if err := db.WithContext(ctx).Create(&cumin).Error; err != nil {
		return err
	}

	recipe := models.Recipe{
		Name:     "Chicken and Rice",
		MealType: "lunch",
		Status:   models.RecipeStatusComplete,
		Calories: 508,
		Protein:  51.9,
		Carbs:    56.4,
		Fat:      6,
	}
	if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return err
	}

	riceQty := 200.0
	chickenQty := 150.0
	links := []models.RecipeIngredient{
		{
			RecipeID:     recipe.ID,
			RawName:      "أرز بسمتي",
			Quantity:     &riceQty,
			Unit:         "g",
			SortOrder:    0,
			IngredientID: &rice.ID,
			IsMatched:    true,
		},
		{
			RecipeID:     recipe.ID,
			RawName:      "chicken breast",
			Quantity:     &chickenQty,
			Unit:         "g",
			SortOrder:    1,
			IngredientID: &chicken.ID,
			IsMatched:    true,
		},
		{
			RecipeID:  recipe.ID,
			RawName:   "كمون",
			IsSpice:   true,
			SortOrder: 2,
			SpiceID:   &cumin.ID,
			IsMatched: true,
		},
	}

	for _, link := range links {
		linkCopy := link
		if err := db.WithContext(ctx).Create(&linkCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
