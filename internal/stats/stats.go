// Package stats tracks the three request tallies the proxy reports on
// SIGUSR1: successful, filtered, and errored requests. Grounded on
// original_source/stat_tracking.c's Stats struct (one mutex guarding three
// counters plus the frozen filter-label list) and its print_stats report
// format.
package stats

import (
	"fmt"
	"strings"
	"sync"
)

// Counters is a mutex-protected set of request tallies.
type Counters struct {
	mu         sync.Mutex
	successful uint64
	filtered   uint64
	errors     uint64
	filterTags []string
}

// New returns a zeroed Counters reporting filterTags (the configured
// blocklist, for display only — matching is done by pkg/filter) in its
// snapshot.
func New(filterTags []string) *Counters {
	return &Counters{filterTags: filterTags}
}

// AddSuccess increments the successful-request tally.
func (c *Counters) AddSuccess() {
	c.mu.Lock()
	c.successful++
	c.mu.Unlock()
}

// AddFiltered increments the filtered-request tally.
func (c *Counters) AddFiltered() {
	c.mu.Lock()
	c.filtered++
	c.mu.Unlock()
}

// AddError increments the errored-request tally.
func (c *Counters) AddError() {
	c.mu.Lock()
	c.errors++
	c.mu.Unlock()
}

// Snapshot is a point-in-time copy of the counters, safe to read without
// the lock held.
type Snapshot struct {
	Successful uint64
	Filtered   uint64
	Errors     uint64
	FilterTags []string
}

// Snapshot takes a consistent copy of the current counters.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Successful: c.successful,
		Filtered:   c.filtered,
		Errors:     c.errors,
		FilterTags: c.filterTags,
	}
}

// Report formats a SIGUSR1 status dump, matching
// original_source/stat_tracking.c's print_stats line-for-line.
func (s Snapshot) Report() string {
	var b strings.Builder
	fmt.Fprintln(&b, "Received SIGUSR1...reporting status:")
	fmt.Fprintf(&b, "-- Processed %d requests successfully\n", s.Successful)
	fmt.Fprintf(&b, "-- Filtering: %s\n", strings.Join(s.FilterTags, ", "))
	fmt.Fprintf(&b, "-- Filtered %d requests\n", s.Filtered)
	fmt.Fprintf(&b, "-- Encountered %d requests in error", s.Errors)
	return b.String()
}
