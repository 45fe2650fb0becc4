package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"wasfa/internal/batch"
	applog "wasfa/internal/log"
	"wasfa/models"
)

// Summary reports the outcome of one import run.
type Summary struct {
	Inserted int
	Updated  int
	Skipped  int
	Failures []batch.ChunkError
}

// String renders the summary in the form printed by the import commands.
func (s Summary) String() string {
	return fmt.Sprintf("inserted=%d updated=%d skipped=%d errors=%d", s.Inserted, s.Updated, s.Skipped, len(s.Failures))
}

// ImportFoods upserts the ingredient and spice corpora from tabular rows.
// Rows marked with type "spice" become spice records; everything else is an
// ingredient. Rows missing the required name are skipped and logged with
// their position. Writes happen in chunked transactions with partial-failure
// semantics.
func ImportFoods(ctx context.Context, db *gorm.DB, rows []Row, chunkSize int) (Summary, error) {
	if db == nil {
		return Summary{}, errors.New("database handle is nil")
	}

	summary := Summary{}
	valid := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Field("name", "ingredient name", "الاسم") == "" {
			summary.Skipped++
			applog.Warn(ctx, "skipping food row without a name",
				"line", row.Line,
				"name_alt", row.Field("name_alt", "alt name"),
				"food_group", row.Field("food_group", "group"),
				"calories", row.Field("calories"),
			)
			continue
		}
		valid = append(valid, row)
	}

	counts := struct{ inserted, updated int }{}
	summary.Failures = batch.InGroups(valid, chunkSize, func(chunk int, group []Row) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, row := range group {
				inserted, err := upsertFood(tx, row)
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

	applog.Info(ctx, "food import finished",
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed_chunks", len(summary.Failures),
	)
	return summary, nil
}

func upsertFood(tx *gorm.DB, row Row) (inserted bool, err error) {
	if isSpiceRow(row) {
		return upsertSpice(tx, row)
	}
	return upsertIngredient(tx, row)
}

func isSpiceRow(row Row) bool {
	return strings.EqualFold(row.Field("type", "kind"), "spice") || row.BoolField("is_spice", "spice")
}

func upsertIngredient(tx *gorm.DB, row Row) (bool, error) {
	name := row.Field("name", "ingredient name", "الاسم")

	record := models.Ingredient{
		Name:        name,
		NameAlt:     row.Field("name_alt", "alt name", "arabic name"),
		FoodGroup:   row.Field("food_group", "group"),
		Subgroup:    row.Field("subgroup", "sub group"),
		ServingUnit: row.Field("unit", "serving unit"),
	}
	if v := row.FloatField("amount", "serving_size", "serving size"); v != nil {
		record.ServingSize = *v
	}
	if v := row.FloatField("calories"); v != nil {
		record.Calories = *v
	}
	if v := row.FloatField("protein"); v != nil {
		record.Protein = *v
	}
	if v := row.FloatField("carbs", "carbohydrates"); v != nil {
		record.Carbs = *v
	}
	if v := row.FloatField("fat"); v != nil {
		record.Fat = *v
	}

	var existing models.Ingredient
	err := tx.Where("name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		for _, alias := range splitAliases(row.Field("aliases", "other names")) {
			record.Aliases = append(record.Aliases, models.IngredientAlias{Name: alias})
		}
		if err := tx.Create(&record).Error; err != nil {
			return false, fmt.Errorf("create ingredient %q (line %d): %w", name, row.Line, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find ingredient %q (line %d): %w", name, row.Line, err)
	}

	updates := map[string]any{
		"name_alt":     record.NameAlt,
		"food_group":   record.FoodGroup,
		"subgroup":     record.Subgroup,
		"serving_size": record.ServingSize,
		"serving_unit": record.ServingUnit,
		"calories":     record.Calories,
		"protein":      record.Protein,
		"carbs":        record.Carbs,
		"fat":          record.Fat,
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("update ingredient %q (line %d): %w", name, row.Line, err)
	}

	if err := replaceIngredientAliases(tx, existing.ID, splitAliases(row.Field("aliases", "other names"))); err != nil {
		return false, fmt.Errorf("replace aliases for %q (line %d): %w", name, row.Line, err)
	}
	return false, nil
}

func upsertSpice(tx *gorm.DB, row Row) (bool, error) {
	name := row.Field("name", "ingredient name", "الاسم")

	record := models.Spice{
		Name:      name,
		NameAlt:   row.Field("name_alt", "alt name", "arabic name"),
		IsDefault: row.BoolField("is_default", "default"),
	}

	var existing models.Spice
	err := tx.Where("name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		for _, alias := range splitAliases(row.Field("aliases", "other names")) {
			record.Aliases = append(record.Aliases, models.SpiceAlias{Name: alias})
		}
		if err := tx.Create(&record).Error; err != nil {
			return false, fmt.Errorf("create spice %q (line %d): %w", name, row.Line, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find spice %q (line %d): %w", name, row.Line, err)
	}

	updates := map[string]any{
		"name_alt":   record.NameAlt,
		"is_default": record.IsDefault,
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("update spice %q (line %d): %w", name, row.Line, err)
	}

	if err := replaceSpiceAliases(tx, existing.ID, splitAliases(row.Field("aliases", "other names"))); err != nil {
		return false, fmt.Errorf("replace aliases for %q (line %d): %w", name, row.Line, err)
	}
	return false, nil
}

func replaceIngredientAliases(tx *gorm.DB, id uint, names []string) error {
	if err := tx.Where("ingredient_id = ?", id).Delete(&models.IngredientAlias{}).Error; err != nil {
		return err
	}
	for _, name := range names {
		if err := tx.Create(&models.IngredientAlias{Name: name, IngredientID: id}).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceSpiceAliases(tx *gorm.DB, id uint, names []string) error {
	if err := tx.Where("spice_id = ?", id).Delete(&models.SpiceAlias{}).Error; err != nil {
		return err
	}
	for _, name := range names {
		if err := tx.Create(&models.SpiceAlias{Name: name, SpiceID: id}).Error; err != nil {
			return err
		}
	}
	return nil
}
