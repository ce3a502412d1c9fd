// Package assistant answers site visitor questions from the knowledge
// document using ordered keyword rules. Nothing in here performs I/O once
// the document is in memory.
package assistant

import (
	"strings"
	"unicode"
)

// Normalize lower-cases s, collapses whitespace runs to one space and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeStrict is Normalize with every rune that is not a letter, number
// or space replaced by a space, so "Pricing?" and "pricing" compare equal.
func NormalizeStrict(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(s))
	return strings.Join(strings.Fields(mapped), " ")
}

// IncludesAny reports whether any phrase occurs in text once both are
// normalized. Blank phrases never match.
func IncludesAny(text string, phrases []string) bool {
	t := Normalize(text)
	for _, p := range phrases {
		np := Normalize(p)
		if np == "" {
			continue
		}
		if strings.Contains(t, np) {
			return true
		}
	}
	return false
}
