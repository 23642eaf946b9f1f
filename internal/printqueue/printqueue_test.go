package printqueue

import (
	"testing"

	"github.com/google/uuid"
)

func TestSubmitAfterStopIsNoOp(t *testing.T) {
	q := Start(false)
	q.Stop()

	// Must not panic or block despite the queue's channel being closed.
	q.Submit("late line")
}

func TestSubmitDebugNoOpWhenDisabled(t *testing.T) {
	q := Start(false)
	defer q.Stop()

	// Should not block or panic even though debug output is disabled.
	q.SubmitDebug(uuid.New(), "debug line")
}

func TestStopIsIdempotent(t *testing.T) {
	q := Start(true)
	q.Stop()
	q.Stop()
}
