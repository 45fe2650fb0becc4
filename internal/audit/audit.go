// Package audit is the batch consistency checker for recipe-ingredient links.
// It clears orphaned references, recomputes match flags, flags recipes with
// no lines, scores candidates for unmatched lines, and can accept the top
// candidate automatically above a configurable threshold.
package audit

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"wasfa/internal/batch"
	"wasfa/internal/index"
	applog "wasfa/internal/log"
	"wasfa/internal/nutrition"
	"wasfa/internal/textnorm"
	"wasfa/models"
)

// Options controls one audit run.
type Options struct {
	// Apply persists corrections; the default is a dry run that only reports.
	Apply bool
	// AutoMatch accepts the top candidate for unmatched lines at or above
	// Threshold.
	AutoMatch bool
	// Threshold is the minimum auto-match score; zero means the default.
	Threshold int
	// ChunkSize bounds each write transaction; zero means the default.
	ChunkSize int
}

// Candidate is one scored match proposal for an unmatched line.
type Candidate struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	IsSpice bool   `json:"is_spice"`
	Score   int    `json:"score"`
}

// Suggestion carries the top candidates for one unmatched line.
type Suggestion struct {
	LinkID     uint        `json:"link_id"`
	RawName    string      `json:"raw_name"`
	Candidates []Candidate `json:"candidates"`
}

// Report summarizes one audit run.
type Report struct {
	LinksChecked   int
	OrphansCleared int
	FlagsFixed     int
	EmptyRecipes   []string
	UnmatchedLines int
	AutoMatched    int
	Suggestions    []Suggestion
	Collisions     []index.Collision
	ChunkErrors    []batch.ChunkError
}

// Clean reports whether the run found nothing left to fix: no remaining
// unmatched lines, no empty recipes, and no failed chunks.
func (r Report) Clean() bool {
	remaining := r.UnmatchedLines - r.AutoMatched
	return remaining == 0 && len(r.EmptyRecipes) == 0 && len(r.ChunkErrors) == 0
}

// topCandidates bounds the suggestions kept per unmatched line.
const topCandidates = 3

// Auditor runs reconciliation passes against the store.
type Auditor struct {
	db *gorm.DB
}

// New returns an Auditor over the given database handle.
func New(db *gorm.DB) *Auditor {
	return &Auditor{db: db}
}

// Run executes one full audit pass. In dry-run mode nothing is written; in
// apply mode corrections are persisted in chunked transactions with
// partial-failure semantics.
func (a *Auditor) Run(ctx context.Context, opts Options) (Report, error) {
	if a.db == nil {
		return Report{}, fmt.Errorf("database handle is nil")
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultAutoMatchThreshold
	}

	var ingredients []models.Ingredient
	if err := a.db.WithContext(ctx).Preload("Aliases").Find(&ingredients).Error; err != nil {
		return Report{}, fmt.Errorf("load ingredients: %w", err)
	}
	var spices []models.Spice
	if err := a.db.WithContext(ctx).Preload("Aliases").Find(&spices).Error; err != nil {
		return Report{}, fmt.Errorf("load spices: %w", err)
	}

	idx := index.Build(ingredients, spices)

	ingredientIDs := make(map[uint]struct{}, len(ingredients))
	ingredientsByID := make(map[uint]models.Ingredient, len(ingredients))
	for _, record := range ingredients {
		ingredientIDs[record.ID] = struct{}{}
		ingredientsByID[record.ID] = record
	}
	spiceIDs := make(map[uint]struct{}, len(spices))
	for _, record := range spices {
		spiceIDs[record.ID] = struct{}{}
	}

	var links []models.RecipeIngredient
	if err := a.db.WithContext(ctx).Order("recipe_id asc, sort_order asc").Find(&links).Error; err != nil {
		return Report{}, fmt.Errorf("load links: %w", err)
	}

	report := Report{LinksChecked: len(links), Collisions: idx.Collisions()}

	var dirty []models.RecipeIngredient
	touchedRecipes := make(map[uint]struct{})

	for i := range links {
		link := &links[i]
		changed := false

		if link.IngredientID != nil {
			if _, ok := ingredientIDs[*link.IngredientID]; !ok {
				applog.Debug(ctx, "clearing orphaned ingredient reference", "link", link.ID, "ingredient", *link.IngredientID)
				link.IngredientID = nil
				link.IsMatched = false
				report.OrphansCleared++
				changed = true
			}
		}
		if link.SpiceID != nil {
			if _, ok := spiceIDs[*link.SpiceID]; !ok {
				applog.Debug(ctx, "clearing orphaned spice reference", "link", link.ID, "spice", *link.SpiceID)
				link.SpiceID = nil
				link.IsMatched = false
				report.OrphansCleared++
				changed = true
			}
		}

		if !link.ConsistentMatchFlag() {
			link.IsMatched = (link.IngredientID != nil) != (link.SpiceID != nil)
			report.FlagsFixed++
			changed = true
		}

		if !link.IsMatched && link.IngredientID == nil && link.SpiceID == nil {
			if key := textnorm.Normalize(link.RawName); key != "" {
				report.UnmatchedLines++
				candidates := a.scoreCandidates(idx, link)
				if opts.AutoMatch && len(candidates) > 0 && candidates[0].Score >= opts.Threshold {
					accept(link, candidates[0])
					report.AutoMatched++
					changed = true
				} else if len(candidates) > 0 {
					report.Suggestions = append(report.Suggestions, Suggestion{
						LinkID:     link.ID,
						RawName:    link.RawName,
						Candidates: candidates,
					})
				}
			}
		}

		if changed {
			dirty = append(dirty, *link)
			touchedRecipes[link.RecipeID] = struct{}{}
		}
	}

	emptyRecipes, err := a.findEmptyRecipes(ctx)
	if err != nil {
		return Report{}, err
	}
	report.EmptyRecipes = emptyRecipes

	if opts.Apply {
		report.ChunkErrors = a.persist(ctx, dirty, opts.ChunkSize)
		if err := a.refreshRecipes(ctx, touchedRecipes, ingredientsByID); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (a *Auditor) scoreCandidates(idx *index.Index, link *models.RecipeIngredient) []Candidate {
	variants := textnorm.Variants(link.RawName)

	var candidates []Candidate
	if link.IsSpice {
		for _, record := range idx.Spices() {
			aliases := make([]string, 0, len(record.Aliases))
			for _, alias := range record.Aliases {
				aliases = append(aliases, alias.Name)
			}
			if score := matchScore(variants, keysForRecord(record.Name, record.NameAlt, aliases)); score > 0 {
				candidates = append(candidates, Candidate{ID: record.ID, Name: record.Name, IsSpice: true, Score: score})
			}
		}
	} else {
		for _, record := range idx.Ingredients() {
			aliases := make([]string, 0, len(record.Aliases))
			for _, alias := range record.Aliases {
				aliases = append(aliases, alias.Name)
			}
			if score := matchScore(variants, keysForRecord(record.Name, record.NameAlt, aliases)); score > 0 {
				candidates = append(candidates, Candidate{ID: record.ID, Name: record.Name, Score: score})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Name < candidates[j].Name
	})
	if len(candidates) > topCandidates {
		candidates = candidates[:topCandidates]
	}
	return candidates
}

func accept(link *models.RecipeIngredient, candidate Candidate) {
	id := candidate.ID
	if candidate.IsSpice {
		link.SpiceID = &id
		link.IsSpice = true
	} else {
		link.IngredientID = &id
	}
	link.IsMatched = true
	link.Notes = ""
}

func (a *Auditor) findEmptyRecipes(ctx context.Context) ([]string, error) {
	var recipes []models.Recipe
	if err := a.db.WithContext(ctx).
		Where("id NOT IN (?)", a.db.Model(&models.RecipeIngredient{}).Distinct("recipe_id")).
		Order("name asc").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("find recipes without links: %w", err)
	}

	names := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		names = append(names, recipe.Name)
	}
	return names, nil
}

func (a *Auditor) persist(ctx context.Context, dirty []models.RecipeIngredient, chunkSize int) []batch.ChunkError {
	return batch.InGroups(dirty, chunkSize, func(chunk int, group []models.RecipeIngredient) error {
		return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range group {
				link := &group[i]
				updates := map[string]any{
					"ingredient_id": link.IngredientID,
					"spice_id":      link.SpiceID,
					"is_spice":      link.IsSpice,
					"is_matched":    link.IsMatched,
					"notes":         link.Notes,
				}
				if err := tx.Model(&models.RecipeIngredient{}).Where("id = ?", link.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("update link %d: %w", link.ID, err)
				}
			}
			return nil
		})
	})
}

// refreshRecipes recomputes the cached nutrition of every recipe whose links
// changed during the run.
func (a *Auditor) refreshRecipes(ctx context.Context, recipeIDs map[uint]struct{}, byID map[uint]models.Ingredient) error {
	for recipeID := range recipeIDs {
		var recipe models.Recipe
		if err := a.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
			return fmt.Errorf("load recipe %d: %w", recipeID, err)
		}

		var links []models.RecipeIngredient
		if err := a.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Find(&links).Error; err != nil {
			return fmt.Errorf("load links for recipe %d: %w", recipeID, err)
		}

		nutrition.ApplyToRecipe(&recipe, nutrition.Aggregate(links, byID))
		if err := a.db.WithContext(ctx).Model(&recipe).Updates(map[string]any{
			"calories":    recipe.Calories,
			"protein":     recipe.Protein,
			"carbs":       recipe.Carbs,
			"fat":         recipe.Fat,
			"vegetarian":  recipe.Vegetarian,
			"vegan":       recipe.Vegan,
			"gluten_free": recipe.GlutenFree,
			"dairy_free":  recipe.DairyFree,
			"status":      recipe.Status,
			"admin_notes": recipe.AdminNotes,
		}).Error; err != nil {
			return fmt.Errorf("refresh recipe %d: %w", recipeID, err)
		}
	}
	return nil
}
