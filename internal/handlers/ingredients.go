package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"wasfa/internal/index"
	applog "wasfa/internal/log"
	"wasfa/internal/substitution"
	"wasfa/models"
)

type substitutionCandidate struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	NameAlt            string  `json:"name_alt,omitempty"`
	Subgroup           string  `json:"subgroup,omitempty"`
	SameSubgroup       bool    `json:"same_subgroup"`
	SuggestedAmount    float64 `json:"suggested_amount"`
	Unit               string  `json:"unit"`
	CalorieDiffPercent float64 `json:"calorie_diff_percent"`
}

type substitutionResponse struct {
	IngredientID uint                    `json:"ingredient_id"`
	TargetAmount float64                 `json:"target_amount"`
	TargetUnit   string                  `json:"target_unit"`
	Options      []substitutionCandidate `json:"options"`
}

// SubstitutionOptions serves GET /api/ingredients/{id}/substitutions,
// proposing calorie-equivalent alternatives for a target amount of the
// ingredient. Degenerate (zero-amount) options are filtered from the
// response.
func SubstitutionOptions(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/ingredients/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 2 || segments[1] != "substitutions" {
		http.NotFound(w, r)
		return
	}
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid ingredient identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		http.Error(w, "amount must be a positive number", http.StatusBadRequest)
		return
	}
	unit := r.URL.Query().Get("unit")

	var ingredients []models.Ingredient
	if err := database.WithContext(r.Context()).Preload("Aliases").Find(&ingredients).Error; err != nil {
		applog.Error(r.Context(), "failed to load ingredient corpus", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	idx := index.Build(ingredients, nil)
	source, ok := idx.IngredientByID(uint(idValue))
	if !ok {
		http.NotFound(w, r)
		return
	}

	response := substitutionResponse{
		IngredientID: source.ID,
		TargetAmount: amount,
		TargetUnit:   unit,
		Options:      []substitutionCandidate{},
	}
	for _, option := range substitution.Recommend(idx, source.ID, amount) {
		if !option.Usable() {
			continue
		}
		response.Options = append(response.Options, substitutionCandidate{
			ID:                 option.Candidate.ID,
			Name:               option.Candidate.Name,
			NameAlt:            option.Candidate.NameAlt,
			Subgroup:           option.Candidate.Subgroup,
			SameSubgroup:       option.SameSubgroup,
			SuggestedAmount:    option.SuggestedAmount,
			Unit:               option.Candidate.ServingUnit,
			CalorieDiffPercent: option.CalorieDiffPercent,
		})
	}

	writeJSON(w, r, http.StatusOK, response)
}
