// Package procinit wires the proxy's singletons up in the dependency order
// spec.md §5 requires (grammar is package-level and needs no wiring; filter
// -> stats -> print queue -> manager -> listener) and tears them down in
// reverse. Grounded on original_source/server_listener.c's serve_forever,
// which is the single function that constructs and destroys every other
// module in the original.
package procinit

import (
	"github.com/Lucretiel/NPproject2/internal/manager"
	"github.com/Lucretiel/NPproject2/internal/printqueue"
	"github.com/Lucretiel/NPproject2/internal/stats"
	"github.com/Lucretiel/NPproject2/internal/worker"
	"github.com/Lucretiel/NPproject2/pkg/filter"
)

// Proxy bundles every long-lived singleton the accept loop needs, built in
// dependency order by New and torn down in reverse by Shutdown.
type Proxy struct {
	Filter  *filter.Table
	Stats   *stats.Counters
	Print   *printqueue.Queue
	Manager *manager.Manager
	Worker  *worker.Worker
}

// New constructs every singleton in order: filter table, stat counters,
// print queue (which starts its consumer goroutine), connection manager,
// and finally the worker that ties the first three together.
func New(filterLabels []string, debug bool) *Proxy {
	f := filter.NewTable(filterLabels)
	s := stats.New(f.Labels())
	p := printqueue.Start(debug)
	m := manager.New()
	w := worker.New(f, s, p)

	return &Proxy{
		Filter:  f,
		Stats:   s,
		Print:   p,
		Manager: m,
		Worker:  w,
	}
}

// Shutdown waits for every in-flight worker to finish, then stops the
// print queue, the reverse of the order New built things in. It matches
// original_source/server_listener.c's quit_signal path, which (via exit())
// relied on process teardown to flush stdio; here we make the drain
// explicit since Go gives us no equivalent free pass.
func (p *Proxy) Shutdown() {
	p.Manager.Wait()
	p.Print.Stop()
}
