// Package caseless provides the case-insensitive string comparisons used for
// HTTP tokens (methods, header names, the chunked transfer-encoding check)
// and for domain/filter matching. It is a thin wrapper over
// golang.org/x/text/cases so that Unicode case folding — not just the ASCII
// shortcut strings.EqualFold happens to implement — backs every
// case-insensitive comparison in the proxy.
package caseless

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	folder = cases.Fold()
	lower  = cases.Lower(language.Und)
)

// Equal reports whether a and b are equal under Unicode case folding.
func Equal(a, b string) bool {
	return folder.String(a) == folder.String(b)
}

// ToLower returns the lowercased form of s, used for domain normalization
// in pkg/filter (spec.md §4.4: "byte-exact on the ASCII-lowercased form").
func ToLower(s string) string {
	return lower.String(s)
}
