package mock

import (
	"context"
	"testing"

	"wasfa/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var ingredients []models.Ingredient
	if err := db.WithContext(ctx).Find(&ingredients).Error; err != nil {
		t.Fatalf("query ingredients: %v", err)
	}
	if len(ingredients) == 0 {
		t.Fatal("expected seeded ingredients")
	}

	var spices []models.Spice
	if err := db.WithContext(ctx).Find(&spices).Error; err != nil {
		t.Fatalf("query spices: %v", err)
	}
	if len(spices) == 0 {
		t.Fatal("expected seeded spices")
	}

	var links []models.RecipeIngredient
	if err := db.WithContext(ctx).Find(&links).Error; err != nil {
		t.Fatalf("query recipe links: %v", err)
	}
	if len(links) == 0 {
		t.Fatal("expected seeded recipe links")
	}

	for _, link := range links {
		if !link.ConsistentMatchFlag() {
			t.Fatalf("seeded link violates match invariant: %+v", link)
		}
	}
}
