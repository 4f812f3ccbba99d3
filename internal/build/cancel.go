package build

import (
	"context"
	"sync"
)

// CancelRegistry maps build ids to cancellation signals. Executors register a
// handle while they run a build and observe the returned context or poll
// IsCancelled at safe points. Cancellation is advisory.
type CancelRegistry struct {
	mu      sync.Mutex
	entries map[string]*cancelEntry
}

type cancelEntry struct {
	cancelled bool
	// cancel is nil when no executor holds a handle.
	cancel  context.CancelFunc
	handles int
}

func NewCancelRegistry() *CancelRegistry {
	return &CancelRegistry{entries: make(map[string]*cancelEntry)}
}

// Register attaches an execution handle for buildID. The returned context is
// cancelled when cancellation is signalled, immediately if it already was.
// release must be called when the execution ends.
func (r *CancelRegistry) Register(parent context.Context, buildID string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	r.mu.Lock()
	e, ok := r.entries[buildID]
	if !ok {
		e = &cancelEntry{}
		r.entries[buildID] = e
	}
	if e.cancelled {
		cancel()
	}
	prev := e.cancel
	e.cancel = func() {
		if prev != nil {
			prev()
		}
		cancel()
	}
	e.handles++
	r.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			cancel()
			r.mu.Lock()
			defer r.mu.Unlock()
			if cur, ok := r.entries[buildID]; ok && cur == e {
				e.handles--
				if e.handles <= 0 {
					delete(r.entries, buildID)
				}
			}
		})
	}
	return ctx, release
}

// Signal records cancellation for buildID and cancels any live handle.
// It reports whether a live handle was present.
func (r *CancelRegistry) Signal(buildID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[buildID]
	if !ok {
		e = &cancelEntry{}
		r.entries[buildID] = e
	}
	e.cancelled = true
	if e.cancel != nil && e.handles > 0 {
		e.cancel()
		return true
	}
	return false
}

// IsCancelled reports whether cancellation was signalled and not yet released.
func (r *CancelRegistry) IsCancelled(buildID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[buildID]
	return ok && e.cancelled
}

// Release drops the entry for a build that reached a terminal state.
func (r *CancelRegistry) Release(buildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[buildID]; ok {
		if e.cancel != nil {
			e.cancel()
		}
		delete(r.entries, buildID)
	}
}

// Len returns the number of tracked builds.
func (r *CancelRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
