package services

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"virtualta/models"
)

const maxMatches = 2

// Tokenize lowercases the question and splits it on whitespace.
// Tokens are neither stemmed, stripped of punctuation, nor deduplicated.
func Tokenize(question string) []string {
	return strings.FieldsFunc(Lower(question), isSeparator)
}

// isSeparator extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which also delimit tokens.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Lower applies full Unicode lowercasing, including the special cases
// single-rune mapping misses: U+0130 becomes "i" plus a combining dot above,
// and a capital sigma that ends a word becomes a final sigma.
func Lower(s string) string {
	// a Caser is stateful, so each call gets its own
	return cases.Lower(language.Und).String(s)
}

// Match returns up to two records whose effective text contains at least one
// question token as a substring, longest effective text first. Records of
// equal length keep their corpus order. The second return value is the total
// number of candidates before truncation.
func Match(question string, corpus []models.Record) ([]models.Record, int) {
	tokens := Tokenize(question)
	if len(tokens) == 0 {
		return nil, 0
	}

	type candidate struct {
		rec    models.Record
		length int
	}
	var candidates []candidate
	for _, rec := range corpus {
		text, ok := rec.EffectiveText()
		if !ok {
			continue
		}
		if containsAny(Lower(text), tokens) {
			candidates = append(candidates, candidate{rec: rec, length: utf8.RuneCountInString(text)})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].length > candidates[j].length
	})

	n := len(candidates)
	if n > maxMatches {
		candidates = candidates[:maxMatches]
	}
	top := make([]models.Record, len(candidates))
	for i, c := range candidates {
		top[i] = c.rec
	}
	return top, n
}

func containsAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}
