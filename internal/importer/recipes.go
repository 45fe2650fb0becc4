package importer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wasfa/internal/batch"
	"wasfa/internal/index"
	applog "wasfa/internal/log"
	"wasfa/internal/nutrition"
	"wasfa/internal/resolve"
	"wasfa/models"
)

// recipeRows is one recipe's worth of import rows, in file order.
type recipeRows struct {
	name string
	rows []Row
}

// ImportRecipes loads recipes from tabular rows. Rows are grouped by recipe
// name; each row contributes one raw ingredient line. Every line is resolved
// against a freshly built corpus index, nutrition is aggregated, and the
// cached per-serving values, status, and admin notes are stored. Re-importing
// a recipe replaces all of its links.
func ImportRecipes(ctx context.Context, db *gorm.DB, rows []Row, chunkSize int) (Summary, error) {
	if db == nil {
		return Summary{}, errors.New("database handle is nil")
	}

	var ingredients []models.Ingredient
	if err := db.WithContext(ctx).Preload("Aliases").Find(&ingredients).Error; err != nil {
		return Summary{}, fmt.Errorf("load ingredient corpus: %w", err)
	}
	var spices []models.Spice
	if err := db.WithContext(ctx).Preload("Aliases").Find(&spices).Error; err != nil {
		return Summary{}, fmt.Errorf("load spice corpus: %w", err)
	}

	idx := index.Build(ingredients, spices)
	resolver := resolve.New(idx)
	byID := make(map[uint]models.Ingredient, len(ingredients))
	for _, record := range ingredients {
		byID[record.ID] = record
	}

	summary := Summary{}
	grouped := groupByRecipe(ctx, rows, &summary)

	counts := struct{ inserted, updated int }{}
	summary.Failures = batch.InGroups(grouped, chunkSize, func(chunk int, group []recipeRows) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, recipe := range group {
				inserted, err := importRecipe(tx, resolver, byID, recipe)
				if err != nil {
					return err
				}
				if inserted {
					counts.inserted++
				} else {
					counts.updated++
				}
			}
			return nil
		})
	})
	summary.Inserted = counts.inserted
	summary.Updated = counts.updated

	applog.Info(ctx, "recipe import finished",
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed_chunks", len(summary.Failures),
	)
	return summary, nil
}

// groupByRecipe buckets rows by recipe name, keeping both recipe order and
// line order as they appear in the file. Rows without a recipe name are
// skipped and logged with their position.
func groupByRecipe(ctx context.Context, rows []Row, summary *Summary) []recipeRows {
	byName := make(map[string]int)
	var grouped []recipeRows

	for _, row := range rows {
		name := row.Field("recipe", "recipe name", "اسم الوصفة")
		if name == "" {
			summary.Skipped++
			applog.Warn(ctx, "skipping recipe row without a recipe name",
				"line", row.Line,
				"ingredient", row.Field("ingredient", "ingredient name"),
				"quantity", row.Field("quantity", "amount"),
			)
			continue
		}
		pos, ok := byName[name]
		if !ok {
			pos = len(grouped)
			byName[name] = pos
			grouped = append(grouped, recipeRows{name: name})
		}
		grouped[pos].rows = append(grouped[pos].rows, row)
	}
	return grouped
}

func importRecipe(tx *gorm.DB, resolver *resolve.Resolver, byID map[uint]models.Ingredient, group recipeRows) (bool, error) {
	recipe := models.Recipe{Name: group.name, Status: models.RecipeStatusDraft}
	inserted := false

	var existing models.Recipe
	err := tx.Where("name = ?", group.name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&recipe).Error; err != nil {
			return false, fmt.Errorf("create recipe %q: %w", group.name, err)
		}
		inserted = true
	case err != nil:
		return false, fmt.Errorf("find recipe %q: %w", group.name, err)
	default:
		recipe = existing
	}

	// Replace-all semantics: a re-import owns the full link set.
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return false, fmt.Errorf("clear links for recipe %q: %w", group.name, err)
	}

	var links []models.RecipeIngredient
	sortOrder := 0
	for _, row := range group.rows {
		if steps := row.Field("steps", "preparation"); steps != "" {
			recipe.Steps = steps
		}
		if mealType := row.Field("meal_type", "meal"); mealType != "" {
			recipe.MealType = mealType
		}

		rawName := row.Field("ingredient", "ingredient name", "المكون")
		resolution := resolver.Resolve(rawName)
		if resolution.Kind == resolve.Skipped {
			continue
		}

		link := models.RecipeIngredient{
			RecipeID:   recipe.ID,
			RawName:    rawName,
			Quantity:   row.FloatField("quantity", "amount"),
			Unit:       row.Field("unit"),
			IsOptional: row.BoolField("optional", "is_optional"),
			SortOrder:  sortOrder,
		}
		sortOrder++
		resolve.Apply(&link, resolution)

		if err := tx.Create(&link).Error; err != nil {
			return false, fmt.Errorf("create link %q for recipe %q: %w", rawName, group.name, err)
		}
		links = append(links, link)
	}

	nutrition.ApplyToRecipe(&recipe, nutrition.Aggregate(links, byID))
	if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
		"steps":       recipe.Steps,
		"meal_type":   recipe.MealType,
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
		return false, fmt.Errorf("store nutrition for recipe %q: %w", group.name, err)
	}

	return inserted, nil
}
