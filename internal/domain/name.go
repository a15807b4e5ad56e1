package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName prepares a display name for storage: NFC form, trimmed,
// internal whitespace runs collapsed to one space.
//
// NFC keeps visually identical names byte-identical, so "José" typed with a
// combining accent matches the precomposed form when resolving by name.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
