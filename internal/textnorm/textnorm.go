// Package textnorm canonicalizes bilingual (Latin/Arabic) food names into
// lookup keys. Normalization is pure, deterministic, and idempotent: two
// spellings that differ only by diacritics or by folded letter variants
// produce the same key.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	arabicTatweel     = 'ـ'
	arabicAlefWasla   = 'ٱ'
	arabicAlef        = 'ا'
	arabicAlefMaqsura = 'ى'
	arabicYah         = 'ي'
	arabicTehMarbuta  = 'ة'
	arabicHeh         = 'ه'
)

var (
	separatorRuns = regexp.MustCompile(`[\s_\-]+`)

	// NFD exposes the hamza/madda carriers of the composed alef forms
	// (and Latin accents) as combining marks, which are then removed.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize returns the canonical key for a raw bilingual name.
func Normalize(raw string) string {
	value := strings.ToLower(raw)

	if folded, _, err := transform.String(stripMarks, value); err == nil {
		value = folded
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case arabicTatweel:
			// elongation filler, drop entirely
		case arabicAlefWasla:
			b.WriteRune(arabicAlef)
		case arabicAlefMaqsura:
			b.WriteRune(arabicYah)
		case arabicTehMarbuta:
			b.WriteRune(arabicHeh)
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(separatorRuns.ReplaceAllString(b.String(), " "))
}

// Variants returns the lookup variants for a raw name: the canonical key
// plus, when it differs, a variant with the Arabic definite article stripped
// from each word. Empty variants are dropped and the result is deduplicated.
func Variants(raw string) []string {
	key := Normalize(raw)
	if key == "" {
		return nil
	}

	variants := []string{key}
	if stripped := stripDefiniteArticle(key); stripped != "" && stripped != key {
		variants = append(variants, stripped)
	}
	return variants
}

// stripDefiniteArticle removes the Arabic definite article from every word of
// an already-normalized key. Words that are nothing but the article are kept,
// so "الخبز البلدي" and "خبز بلدي" collapse to the same variant.
func stripDefiniteArticle(key string) string {
	const article = "ال" // ال

	words := strings.Split(key, " ")
	out := make([]string, 0, len(words))
	for _, word := range words {
		if strings.HasPrefix(word, article) && len([]rune(word)) > 3 {
			word = strings.TrimPrefix(word, article)
		}
		out = append(out, word)
	}
	return strings.Join(out, " ")
}

// Words splits an already-normalized key into its component words.
func Words(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, " ")
}
