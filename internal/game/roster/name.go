package roster

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims a display name, collapses inner whitespace and
// composes it to NFC so that visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// nameKey is the case-folded key used to detect duplicate names.
func nameKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}
