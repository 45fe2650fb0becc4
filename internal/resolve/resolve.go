// Package resolve classifies raw recipe-ingredient lines against the corpus
// indices. The outcome is a closed tagged variant, so the "at most one
// reference" invariant on links is enforced structurally rather than by
// null-checks.
package resolve

import (
	"fmt"

	"wasfa/internal/index"
	"wasfa/internal/textnorm"
	"wasfa/models"
)

// Kind enumerates the possible resolution outcomes.
type Kind int

const (
	// Skipped means the line was a placeholder or empty and carries no data.
	Skipped Kind = iota
	// MatchedIngredient means the line resolved to a canonical ingredient.
	MatchedIngredient
	// MatchedSpice means the line resolved to a canonical spice.
	MatchedSpice
	// Unmatched means no corpus record claimed any lookup variant.
	Unmatched
)

// Resolution is the outcome of resolving one raw line.
type Resolution struct {
	Kind       Kind
	Ingredient *models.Ingredient
	Spice      *models.Spice
	Note       string
}

// placeholderDenylist holds normalized spellings of column headers and filler
// rows that leak into bulk-imported recipe data. Lines matching any of these
// are skipped outright instead of being reported as unmatched.
var placeholderDenylist = buildDenylist(
	"ingredient",
	"ingredients",
	"ingredient name",
	"name",
	"quantity",
	"amount",
	"unit",
	"n/a",
	"-",
	"المكونات",
	"اسم المكون",
	"الكمية",
	"المقدار",
	"الوحدة",
)

func buildDenylist(entries ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if key := textnorm.Normalize(entry); key != "" {
			out[key] = struct{}{}
		}
	}
	return out
}

// Resolver matches raw lines against a prebuilt corpus index.
type Resolver struct {
	index *index.Index
}

// New returns a Resolver over the given index.
func New(idx *index.Index) *Resolver {
	return &Resolver{index: idx}
}

// Resolve classifies one raw name. The spice index is consulted before the
// ingredient index: when a term could denote either a seasoning or a generic
// foodstuff, spice wins, because spice usage contributes no macros.
func (r *Resolver) Resolve(rawName string) Resolution {
	key := textnorm.Normalize(rawName)
	if key == "" {
		return Resolution{Kind: Skipped}
	}
	if _, denied := placeholderDenylist[key]; denied {
		return Resolution{Kind: Skipped}
	}

	variants := textnorm.Variants(rawName)

	if spice, ok := r.index.Spice(variants); ok {
		return Resolution{Kind: MatchedSpice, Spice: spice}
	}

	if ingredient, ok := r.index.Ingredient(variants); ok {
		return Resolution{Kind: MatchedIngredient, Ingredient: ingredient}
	}

	return Resolution{
		Kind: Unmatched,
		Note: fmt.Sprintf("unmatched ingredient %q - needs admin review", rawName),
	}
}

// ResolveSpice classifies a raw name that is already known to denote a
// seasoning, consulting only the spice index.
func (r *Resolver) ResolveSpice(rawName string) Resolution {
	key := textnorm.Normalize(rawName)
	if key == "" {
		return Resolution{Kind: Skipped}
	}
	if _, denied := placeholderDenylist[key]; denied {
		return Resolution{Kind: Skipped}
	}

	if spice, ok := r.index.Spice(textnorm.Variants(rawName)); ok {
		return Resolution{Kind: MatchedSpice, Spice: spice}
	}

	return Resolution{
		Kind: Unmatched,
		Note: fmt.Sprintf("unmatched spice %q - needs admin review", rawName),
	}
}

// Apply writes a resolution onto a link, clearing whichever reference the
// outcome does not carry.
func Apply(link *models.RecipeIngredient, res Resolution) {
	link.IngredientID = nil
	link.SpiceID = nil
	link.IsMatched = false

	switch res.Kind {
	case MatchedIngredient:
		id := res.Ingredient.ID
		link.IngredientID = &id
		link.IsSpice = false
		link.IsMatched = true
		link.Notes = ""
	case MatchedSpice:
		id := res.Spice.ID
		link.SpiceID = &id
		link.IsSpice = true
		link.IsMatched = true
		link.Notes = ""
	case Unmatched:
		link.Notes = res.Note
	}
}
