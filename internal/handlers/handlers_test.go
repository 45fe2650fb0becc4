package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wasfa/models"
)

func withTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	original := database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&models.Ingredient{}, &models.IngredientAlias{}, &models.Spice{}, &models.SpiceAlias{}, &models.Recipe{}, &models.RecipeIngredient{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	database = db
	t.Cleanup(func() {
		database = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedRecipe(t *testing.T, db *gorm.DB) models.Recipe {
	t.Helper()

	ingredient := models.Ingredient{Name: "Ingredient A", FoodGroup: "grains", ServingSize: 100, ServingUnit: "g", Calories: 100}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient: %v", err)
	}

	recipe := models.Recipe{Name: "Test Recipe", Status: models.RecipeStatusComplete, Calories: 150}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	quantity := 150.0
	link := models.RecipeIngredient{RecipeID: recipe.ID, RawName: "ingredient a", Quantity: &quantity, Unit: "g", IngredientID: &ingredient.ID, IsMatched: true}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("failed to create link: %v", err)
	}
	return recipe
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	Health(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestScaledRecipeToTarget(t *testing.T) {
	db := withTestDatabase(t)
	recipe := seedRecipe(t, db)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/recipes/%d/scaled?target_calories=300", recipe.ID), nil)
	w := httptest.NewRecorder()
	ScaledRecipe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		ScaleFactor      float64 `json:"scale_factor"`
		OriginalCalories float64 `json:"original_calories"`
		ScaledCalories   float64 `json:"scaled_calories"`
		Items            []struct {
			DisplayQuantity *float64 `json:"display_quantity"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ScaleFactor != 2.00 {
		t.Fatalf("scale_factor = %v, want 2.00", response.ScaleFactor)
	}
	if response.ScaledCalories != 300 || response.OriginalCalories != 150 {
		t.Fatalf("calories wrong: %+v", response)
	}
	if len(response.Items) != 1 || response.Items[0].DisplayQuantity == nil || *response.Items[0].DisplayQuantity != 300 {
		t.Fatalf("display quantity wrong: %+v", response.Items)
	}
}

func TestScaledRecipeValidation(t *testing.T) {
	db := withTestDatabase(t)
	recipe := seedRecipe(t, db)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/recipes/%d/scaled?target_calories=-5", recipe.ID), nil)
	w := httptest.NewRecorder()
	ScaledRecipe(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative target, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/recipes/99999/scaled", nil)
	w = httptest.NewRecorder()
	ScaledRecipe(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown recipe, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/recipes/%d/scaled", recipe.ID), nil)
	w = httptest.NewRecorder()
	ScaledRecipe(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST, got %d", w.Code)
	}
}

func TestScaledRecipeWithoutDatabase(t *testing.T) {
	original := database
	database = nil
	t.Cleanup(func() { database = original })

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/1/scaled", nil)
	w := httptest.NewRecorder()
	ScaledRecipe(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without database, got %d", w.Code)
	}
}

func TestSubstitutionOptions(t *testing.T) {
	db := withTestDatabase(t)

	source := models.Ingredient{Name: "Rice", FoodGroup: "grains", Subgroup: "long grain", ServingSize: 100, ServingUnit: "g", Calories: 130}
	same := models.Ingredient{Name: "Basmati Rice", FoodGroup: "grains", Subgroup: "long grain", ServingSize: 100, ServingUnit: "g", Calories: 130}
	degenerate := models.Ingredient{Name: "Air Grain", FoodGroup: "grains", ServingSize: 100, ServingUnit: "g"}
	for _, record := range []*models.Ingredient{&source, &same, &degenerate} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/ingredients/%d/substitutions?amount=200&unit=g", source.ID), nil)
	w := httptest.NewRecorder()
	SubstitutionOptions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response substitutionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// The degenerate zero-calorie candidate is filtered out.
	if len(response.Options) != 1 {
		t.Fatalf("expected 1 usable option, got %+v", response.Options)
	}
	option := response.Options[0]
	if option.Name != "Basmati Rice" || option.SuggestedAmount != 200 || !option.SameSubgroup {
		t.Fatalf("unexpected option: %+v", option)
	}
	if option.CalorieDiffPercent != 0 {
		t.Fatalf("equal density should give 0%% diff, got %v", option.CalorieDiffPercent)
	}
}

func TestSubstitutionOptionsValidation(t *testing.T) {
	withTestDatabase(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ingredients/1/substitutions", nil)
	w := httptest.NewRecorder()
	SubstitutionOptions(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without amount, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/ingredients/424242/substitutions?amount=100", nil)
	w = httptest.NewRecorder()
	SubstitutionOptions(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown ingredient, got %d", w.Code)
	}
}
