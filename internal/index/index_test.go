package index

import (
	"testing"

	"wasfa/internal/textnorm"
	"wasfa/models"
)

func ingredientFixture(id uint, name, alt string, aliases ...string) models.Ingredient {
	record := models.Ingredient{Name: name, NameAlt: alt}
	record.ID = id
	for _, alias := range aliases {
		record.Aliases = append(record.Aliases, models.IngredientAlias{Name: alias})
	}
	return record
}

func spiceFixture(id uint, name, alt string, aliases ...string) models.Spice {
	record := models.Spice{Name: name, NameAlt: alt}
	record.ID = id
	for _, alias := range aliases {
		record.Aliases = append(record.Aliases, models.SpiceAlias{Name: alias})
	}
	return record
}

func TestBuildIndexesAllVariants(t *testing.T) {
	t.Parallel()

	idx := Build(
		[]models.Ingredient{ingredientFixture(1, "Rice", "أرز", "White Rice")},
		[]models.Spice{spiceFixture(7, "Cumin", "كمون", "Ground Cumin")},
	)

	for _, lookup := range []string{"rice", "ارز", "white rice"} {
		record, ok := idx.Ingredient(textnorm.Variants(lookup))
		if !ok || record.ID != 1 {
			t.Fatalf("lookup %q: got %v, ok=%t", lookup, record, ok)
		}
	}

	for _, lookup := range []string{"CUMIN", "كمون", "ground   cumin"} {
		record, ok := idx.Spice(textnorm.Variants(lookup))
		if !ok || record.ID != 7 {
			t.Fatalf("spice lookup %q: got %v, ok=%t", lookup, record, ok)
		}
	}

	if _, ok := idx.Ingredient(textnorm.Variants("quinoa")); ok {
		t.Fatal("unexpected match for unknown name")
	}
}

func TestBuildFirstWriterWins(t *testing.T) {
	t.Parallel()

	idx := Build([]models.Ingredient{
		ingredientFixture(1, "Sugar", ""),
		ingredientFixture(2, "sugar", ""),
	}, nil)

	record, ok := idx.Ingredient([]string{"sugar"})
	if !ok || record.ID != 1 {
		t.Fatalf("expected first writer (id 1) to keep the key, got %+v", record)
	}

	collisions := idx.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("expected 1 collision, got %d", len(collisions))
	}
	if collisions[0].Key != "sugar" || collisions[0].KeptID != 1 || collisions[0].LosingID != 2 {
		t.Fatalf("unexpected collision record: %+v", collisions[0])
	}
}

func TestBuildDiacriticVariantsShareKey(t *testing.T) {
	t.Parallel()

	idx := Build([]models.Ingredient{ingredientFixture(3, "سُكَّر", "")}, nil)

	record, ok := idx.Ingredient(textnorm.Variants("سكر"))
	if !ok || record.ID != 3 {
		t.Fatalf("diacritic-free spelling should resolve, got %v ok=%t", record, ok)
	}
}

func TestIngredientsDeduplicates(t *testing.T) {
	t.Parallel()

	idx := Build([]models.Ingredient{ingredientFixture(1, "Rice", "أرز", "White Rice", "Long Grain Rice")}, nil)

	if got := idx.Ingredients(); len(got) != 1 {
		t.Fatalf("expected 1 distinct ingredient, got %d", len(got))
	}

	record, ok := idx.IngredientByID(1)
	if !ok || record.Name != "Rice" {
		t.Fatalf("IngredientByID(1) = %v, ok=%t", record, ok)
	}
}
