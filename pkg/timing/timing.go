// Package timing measures how long one proxied request spends connecting
// to the origin and waiting for its response, surfaced only through
// debug-log narration (see SPEC_FULL.md §6). Adapted from the teacher's
// DNS/TCP/TLS/TTFB Timer into the two phases this proxy actually has: it
// never resolves TLS itself and never times DNS apart from the dial, since
// net.DialTimeout does both in one call.
package timing

import (
	"fmt"
	"time"
)

// Timer measures the two phases of one proxied request: connecting to the
// origin, and then waiting for/reading its response.
type Timer struct {
	start      time.Time
	dialStart  time.Time
	dialEnd    time.Time
	originStart time.Time
	originEnd   time.Time
}

// NewTimer starts a timing session for one request.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// StartDial marks the beginning of the origin dial.
func (t *Timer) StartDial() { t.dialStart = time.Now() }

// EndDial marks the end of the origin dial.
func (t *Timer) EndDial() { t.dialEnd = time.Now() }

// StartOrigin marks when the request has been sent and we start waiting on
// the origin's response.
func (t *Timer) StartOrigin() { t.originStart = time.Now() }

// EndOrigin marks when the full origin response has been read.
func (t *Timer) EndOrigin() { t.originEnd = time.Now() }

// Metrics is a snapshot of one request's timing, good for one debug log
// line.
type Metrics struct {
	Dial   time.Duration
	Origin time.Duration
	Total  time.Duration
}

// Metrics computes the final snapshot. Call after EndOrigin.
func (t *Timer) Metrics() Metrics {
	m := Metrics{Total: time.Since(t.start)}
	if !t.dialStart.IsZero() && !t.dialEnd.IsZero() {
		m.Dial = t.dialEnd.Sub(t.dialStart)
	}
	if !t.originStart.IsZero() && !t.originEnd.IsZero() {
		m.Origin = t.originEnd.Sub(t.originStart)
	}
	return m
}

// String formats the metrics for a debug log line.
func (m Metrics) String() string {
	return fmt.Sprintf("dial=%v origin=%v total=%v", m.Dial, m.Origin, m.Total)
}
