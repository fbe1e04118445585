package input

import (
	"fmt"
	"io"
	"os"
)

// KeyQueue hands key events from a polling loop to a reader without blocking
// the poller. When the reader falls behind, new events are dropped and the
// first drop is reported on Warn.
type KeyQueue struct {
	ch      chan RawInput
	dropped int

	// Warn receives the one-time drop warning. Nil silences it.
	Warn io.Writer
}

// NewKeyQueue returns a queue buffering up to size events.
func NewKeyQueue(size int) *KeyQueue {
	return &KeyQueue{ch: make(chan RawInput, size), Warn: os.Stderr}
}

// Offer enqueues ev and reports whether it was accepted.
func (q *KeyQueue) Offer(ev RawInput) bool {
	select {
	case q.ch <- ev:
		return true
	default:
	}
	q.dropped++
	if q.dropped == 1 && q.Warn != nil {
		fmt.Fprintf(q.Warn, "Warning: key queue full, dropping %q (viewer is behind)\n", ev.Code)
	}
	return false
}

// C is the receive side of the queue.
func (q *KeyQueue) C() <-chan RawInput {
	return q.ch
}

// Dropped returns how many events were discarded.
func (q *KeyQueue) Dropped() int {
	return q.dropped
}
