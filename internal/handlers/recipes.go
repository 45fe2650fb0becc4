package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "wasfa/internal/log"
	"wasfa/internal/nutrition"
	"wasfa/models"
)

type scaledRecipeResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	MealType string `json:"meal_type"`
	nutrition.ScaledRecipe
}

// ScaledRecipe serves GET /api/recipes/{id}/scaled, scaling the recipe's
// cached per-serving nutrition to a calorie target or explicit factor.
func ScaledRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/recipes/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 2 || segments[1] != "scaled" {
		http.NotFound(w, r)
		return
	}
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}

	opts := nutrition.ScaleOptions{}
	if raw := r.URL.Query().Get("target_calories"); raw != "" {
		target, err := strconv.ParseFloat(raw, 64)
		if err != nil || target <= 0 {
			http.Error(w, "target_calories must be a positive number", http.StatusBadRequest)
			return
		}
		opts.TargetCalories = &target
	}
	if raw := r.URL.Query().Get("scale_factor"); raw != "" {
		factor, err := strconv.ParseFloat(raw, 64)
		if err != nil || factor <= 0 {
			http.Error(w, "scale_factor must be a positive number", http.StatusBadRequest)
			return
		}
		opts.ScaleFactor = &factor
	}

	var recipe models.Recipe
	err = database.WithContext(r.Context()).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		First(&recipe, uint(idValue)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to load recipe", "recipe", idValue, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, scaledRecipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Status:       recipe.Status,
		MealType:     recipe.MealType,
		ScaledRecipe: nutrition.Scale(recipe.Calories, recipe.Ingredients, opts),
	})
}
