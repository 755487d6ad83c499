package coordinator

import (
	"sync"
	"sync/atomic"
)

// RunState is the shared cancellation flag. It starts active and can only
// ever move to inactive.
type RunState struct {
	active  atomic.Bool
	stopped chan struct{}
	once    sync.Once
}

// NewRunState returns an active flag.
func NewRunState() *RunState {
	r := &RunState{stopped: make(chan struct{})}
	r.active.Store(true)
	return r
}

// Active reports whether the watch should keep going.
func (r *RunState) Active() bool {
	return r.active.Load()
}

// Cancel flips the flag to inactive. It returns true only for the call that
// performed the transition.
func (r *RunState) Cancel() bool {
	changed := false
	r.once.Do(func() {
		r.active.Store(false)
		close(r.stopped)
		changed = true
	})
	return changed
}

// Stopped is closed once Cancel has run, so sleepers can wake early.
func (r *RunState) Stopped() <-chan struct{} {
	return r.stopped
}
