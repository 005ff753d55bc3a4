package scene

import (
	"sync"
	"time"
)

// Timers schedules fire-and-forget callbacks guarded by a liveness token.
// Invalidate turns every pending callback into a no-op, so a scene that was
// reset or left behind never sees late callbacks from its previous life.
// The zero value is ready to use.
type Timers struct {
	mu  sync.Mutex
	gen uint64
}

// After runs fn after d unless the timers are invalidated first.
func (t *Timers) After(d time.Duration, fn func()) {
	t.mu.Lock()
	gen := t.gen
	t.mu.Unlock()

	time.AfterFunc(d, func() {
		if t.live(gen) {
			fn()
		}
	})
}

// Invalidate cancels all pending callbacks.
func (t *Timers) Invalidate() {
	t.mu.Lock()
	t.gen++
	t.mu.Unlock()
}

func (t *Timers) live(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen == gen
}
