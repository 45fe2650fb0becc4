// Package index builds the in-memory lookup maps used to resolve raw recipe
// lines against the ingredient and spice corpora.
package index

import (
	"wasfa/internal/textnorm"
	"wasfa/models"
)

// Collision records a normalized key that two distinct records tried to claim.
// The first writer keeps the key; collisions are surfaced for data-quality
// review rather than changing matching outcomes.
type Collision struct {
	Key      string
	Kind     string // "ingredient" or "spice"
	KeptID   uint
	LosingID uint
}

// Index is an immutable snapshot of the corpus keyed by normalized name.
// Build it once per run and pass it by parameter; never mutate it afterwards.
type Index struct {
	ingredients map[string]*models.Ingredient
	spices      map[string]*models.Spice
	collisions  []Collision
}

// Build constructs an Index from the full corpora. Every lookup variant of
// every name, alt name, and alias is inserted; when a key is already present
// the first writer wins and the collision is recorded.
func Build(ingredients []models.Ingredient, spices []models.Spice) *Index {
	idx := &Index{
		ingredients: make(map[string]*models.Ingredient, len(ingredients)*2),
		spices:      make(map[string]*models.Spice, len(spices)*2),
	}

	for i := range ingredients {
		record := &ingredients[i]
		names := []string{record.Name, record.NameAlt}
		for _, alias := range record.Aliases {
			names = append(names, alias.Name)
		}
		for _, name := range names {
			for _, key := range textnorm.Variants(name) {
				idx.putIngredient(key, record)
			}
		}
	}

	for i := range spices {
		record := &spices[i]
		names := []string{record.Name, record.NameAlt}
		for _, alias := range record.Aliases {
			names = append(names, alias.Name)
		}
		for _, name := range names {
			for _, key := range textnorm.Variants(name) {
				idx.putSpice(key, record)
			}
		}
	}

	return idx
}

func (idx *Index) putIngredient(key string, record *models.Ingredient) {
	if existing, ok := idx.ingredients[key]; ok {
		if existing.ID != record.ID {
			idx.collisions = append(idx.collisions, Collision{Key: key, Kind: "ingredient", KeptID: existing.ID, LosingID: record.ID})
		}
		return
	}
	idx.ingredients[key] = record
}

func (idx *Index) putSpice(key string, record *models.Spice) {
	if existing, ok := idx.spices[key]; ok {
		if existing.ID != record.ID {
			idx.collisions = append(idx.collisions, Collision{Key: key, Kind: "spice", KeptID: existing.ID, LosingID: record.ID})
		}
		return
	}
	idx.spices[key] = record
}

// Ingredient looks up an ingredient by any of the given lookup variants.
func (idx *Index) Ingredient(variants []string) (*models.Ingredient, bool) {
	for _, key := range variants {
		if record, ok := idx.ingredients[key]; ok {
			return record, true
		}
	}
	return nil, false
}

// Spice looks up a spice by any of the given lookup variants.
func (idx *Index) Spice(variants []string) (*models.Spice, bool) {
	for _, key := range variants {
		if record, ok := idx.spices[key]; ok {
			return record, true
		}
	}
	return nil, false
}

// IngredientByID returns the indexed ingredient with the given primary key.
func (idx *Index) IngredientByID(id uint) (*models.Ingredient, bool) {
	for _, record := range idx.ingredients {
		if record.ID == id {
			return record, true
		}
	}
	return nil, false
}

// Ingredients returns one entry per distinct indexed ingredient.
func (idx *Index) Ingredients() []*models.Ingredient {
	seen := make(map[uint]struct{}, len(idx.ingredients))
	out := make([]*models.Ingredient, 0, len(idx.ingredients))
	for _, record := range idx.ingredients {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		out = append(out, record)
	}
	return out
}

// Spices returns one entry per distinct indexed spice.
func (idx *Index) Spices() []*models.Spice {
	seen := make(map[uint]struct{}, len(idx.spices))
	out := make([]*models.Spice, 0, len(idx.spices))
	for _, record := range idx.spices {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		out = append(out, record)
	}
	return out
}

// IngredientKeys returns every normalized ingredient key with its record.
func (idx *Index) IngredientKeys() map[string]*models.Ingredient {
	return idx.ingredients
}

// SpiceKeys returns every normalized spice key with its record.
func (idx *Index) SpiceKeys() map[string]*models.Spice {
	return idx.spices
}

// Collisions reports the keys that more than one record tried to claim.
func (idx *Index) Collisions() []Collision {
	return idx.collisions
}
