package audit

import (
	"math"
	"strings"

	"wasfa/internal/textnorm"
)

// Match score tiers. These are tuned business rules, not model-derived
// values: exact key equality is certain, an alias hit is almost certain,
// containment usually means a qualified form of the same item, and anything
// weaker degrades with word overlap.
const (
	// ScoreExactName is awarded when a lookup variant equals a record's
	// normalized name or alt name.
	ScoreExactName = 100
	// ScoreExactAlias is awarded when a lookup variant equals a normalized
	// alias.
	ScoreExactAlias = 95
	// ScoreSubstring is awarded when either side contains the other.
	ScoreSubstring = 70
	// wordOverlapWeight scales the proportional word-overlap fallback, so a
	// partial overlap can never outrank a containment hit.
	wordOverlapWeight = 60

	// DefaultAutoMatchThreshold is the minimum score at which the auditor
	// accepts a candidate without human review.
	DefaultAutoMatchThreshold = 90
)

// nameKeys groups the normalized lookup keys of one corpus record.
type nameKeys struct {
	names   []string
	aliases []string
}

func keysForRecord(name, alt string, aliases []string) nameKeys {
	keys := nameKeys{}
	for _, value := range []string{name, alt} {
		keys.names = append(keys.names, textnorm.Variants(value)...)
	}
	for _, alias := range aliases {
		keys.aliases = append(keys.aliases, textnorm.Variants(alias)...)
	}
	return keys
}

// matchScore estimates, on a 0-100 scale, how likely the raw line the given
// lookup variants came from refers to the record behind keys.
func matchScore(variants []string, keys nameKeys) int {
	best := 0

	score := func(candidate int) {
		if candidate > best {
			best = candidate
		}
	}

	for _, variant := range variants {
		for _, key := range keys.names {
			switch {
			case variant == key:
				score(ScoreExactName)
			case strings.Contains(key, variant) || strings.Contains(variant, key):
				score(ScoreSubstring)
			default:
				score(wordOverlap(variant, key))
			}
		}
		for _, key := range keys.aliases {
			switch {
			case variant == key:
				score(ScoreExactAlias)
			case strings.Contains(key, variant) || strings.Contains(variant, key):
				score(ScoreSubstring)
			default:
				score(wordOverlap(variant, key))
			}
		}
	}

	return best
}

// wordOverlap returns round(shared / max(word counts) * wordOverlapWeight).
func wordOverlap(a, b string) int {
	wordsA := textnorm.Words(a)
	wordsB := textnorm.Words(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(wordsA))
	for _, word := range wordsA {
		seen[word] = struct{}{}
	}

	shared := 0
	counted := make(map[string]struct{}, len(wordsB))
	for _, word := range wordsB {
		if _, ok := seen[word]; !ok {
			continue
		}
		if _, dup := counted[word]; dup {
			continue
		}
		counted[word] = struct{}{}
		shared++
	}
	if shared == 0 {
		return 0
	}

	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	return int(math.Round(float64(shared) / float64(longest) * wordOverlapWeight))
}
