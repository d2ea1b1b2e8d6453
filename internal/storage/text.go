package storage

import (
	"strings"
	"unicode"
)

// NormalizeName lowercases and trims a food name for matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Tokenize splits a name or query into lowercase letter/digit runs.
// Punctuation is a separator. Both stores match prefixes against this split.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// MatchesPrefixTokens reports whether every query token prefixes some name token.
func MatchesPrefixTokens(nameTokens, queryTokens []string) bool {
	if len(queryTokens) == 0 {
		return false
	}
	for _, q := range queryTokens {
		found := false
		for _, n := range nameTokens {
			if strings.HasPrefix(n, q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EscapeLike escapes LIKE wildcards so the term is matched literally.
func EscapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
