package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/echomaze/internal/core"
)

// Source supplies input events to the loop.
type Source interface {
	// Poll waits up to timeout for the next event and returns the sentinel
	// event (core.Empty()) when none arrives. A non-positive timeout waits
	// until an event arrives or ctx is done.
	Poll(ctx context.Context, timeout time.Duration) (core.InputEvent, error)
}

// DefaultQueueSize is the number of pending keys a Queue holds.
const DefaultQueueSize = 64

// Queue is a channel-backed Source fed by the platform layer.
type Queue struct {
	ch chan core.InputEvent
}

// NewQueue creates a queue holding up to size pending events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan core.InputEvent, size)}
}

// Push enqueues ev without blocking. It reports false when the queue is
// full or ev is the sentinel.
func (q *Queue) Push(ev core.InputEvent) bool {
	if ev.IsEmpty() {
		return false
	}
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Poll implements Source.
func (q *Queue) Poll(ctx context.Context, timeout time.Duration) (core.InputEvent, error) {
	if timeout <= 0 {
		select {
		case ev := <-q.ch:
			return ev, nil
		case <-ctx.Done():
			return core.Empty(), ctx.Err()
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-q.ch:
		return ev, nil
	case <-ctx.Done():
		return core.Empty(), ctx.Err()
	case <-timer.C:
		return core.Empty(), nil
	}
}
