// Package printqueue is a single consumer goroutine draining a FIFO of log
// lines, so that concurrent workers never interleave partial writes to
// stdout. Grounded on original_source/print_thread.c's MessageNode queue +
// condvar-guarded consumer; here a buffered channel plays the role of the
// queue and the consumer goroutine reads until the channel is closed.
package printqueue

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Queue is a started print queue. Submit and SubmitDebug are safe to call
// from any goroutine; Stop drains and closes the queue exactly once.
type Queue struct {
	lines   chan string
	debug   bool
	done    chan struct{}
	closeMu sync.Mutex
	closed  bool
}

// Start launches the consumer goroutine and returns the running Queue.
// debug enables SubmitDebug output, matching original_source/print_thread.c's
// DEBUG_PRINT-gated submit_debug.
func Start(debug bool) *Queue {
	q := &Queue{
		lines: make(chan string, 256),
		debug: debug,
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for line := range q.lines {
		fmt.Println(line)
	}
}

// Submit enqueues a line for printing. It is a no-op once Stop has been
// called.
func (q *Queue) Submit(line string) {
	q.closeMu.Lock()
	defer q.closeMu.Unlock()
	if q.closed {
		return
	}
	q.lines <- line
}

// SubmitDebug enqueues a debug-only line, annotated with a per-connection
// correlation id in place of original_source's PRINT_TID thread-id prefix
// toggle. It is a no-op when the queue was not started in debug mode.
func (q *Queue) SubmitDebug(connID uuid.UUID, line string) {
	if !q.debug {
		return
	}
	q.Submit(fmt.Sprintf("[conn %s] %s", connID, line))
}

// Stop closes the queue and blocks until every already-submitted line has
// been printed, matching original_source/print_thread.c's
// shutdown_queue+join pairing in end_print_thread.
func (q *Queue) Stop() {
	q.closeMu.Lock()
	if q.closed {
		q.closeMu.Unlock()
		return
	}
	q.closed = true
	close(q.lines)
	q.closeMu.Unlock()
	<-q.done
}
