// Package filter implements the domain blocklist: an immutable, ordered
// list of labels checked by exact match, dot-bounded prefix, or
// dot-bounded suffix. Grounded on original_source/filter.c's
// filter_matches (the simpler of the two original variants — filters.c's
// FilterNode linked list does the same thing with more indirection).
package filter

import (
	"strings"

	"github.com/Lucretiel/NPproject2/pkg/caseless"
)

// Table is an immutable set of blocked domain labels, built once at startup
// and never mutated afterward (spec.md §4.4: "immutable after init; read
// concurrently by every worker with no lock").
type Table struct {
	labels []string
}

// NewTable builds a Table from the given labels, lowercasing each one.
func NewTable(labels []string) *Table {
	t := &Table{labels: make([]string, len(labels))}
	for i, l := range labels {
		t.labels[i] = caseless.ToLower(l)
	}
	return t
}

// Labels returns the table's labels in their given order, lowercased, for stats
// reporting (original_source/stat_tracking.c's "-- Filtering: %s" line).
func (t *Table) Labels() []string {
	return t.labels
}

// Matches reports whether candidate is blocked by any label in the table.
// A label matches a candidate domain if the candidate equals the label
// exactly, ends with "."+label (a subdomain), or starts with label+"."
// (label is itself a subdomain prefix of the candidate) — per spec.md
// §4.4's "exact, dot-prefix, or dot-suffix" rule.
func (t *Table) Matches(candidate string) bool {
	candidate = caseless.ToLower(candidate)
	for _, label := range t.labels {
		if matchesLabel(candidate, label) {
			return true
		}
	}
	return false
}

func matchesLabel(candidate, label string) bool {
	if candidate == label {
		return true
	}
	if strings.HasSuffix(candidate, "."+label) {
		return true
	}
	if strings.HasPrefix(candidate, label+".") {
		return true
	}
	return false
}
