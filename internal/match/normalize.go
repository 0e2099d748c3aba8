package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier to lower case and strips separators,
// so "partial_eq", "Partial-Eq" and "PartialEq" normalize alike.
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
