package paginate

import (
	"context"
	"sync"
)

// Tracker counts outstanding asynchronous resources of a single page. Page is
// ready when nothing is pending. Counting is safe from any goroutine.
type Tracker struct {
	mu      sync.Mutex
	pending int
	done    chan struct{} // closed while pending is zero
	armed   bool
}

func NewTracker() *Tracker {
	t := &Tracker{done: make(chan struct{})}
	close(t.done)
	return t
}

// AddPendingResource registers one more resource to wait for.
func (t *Tracker) AddPendingResource() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == 0 {
		t.done = make(chan struct{})
	}
	t.pending++
}

// ResourceCompleted signals that one resource finished (successfully or not).
// Extra completions are ignored and reported by returning false.
func (t *Tracker) ResourceCompleted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == 0 {
		return false
	}
	t.pending--
	if t.pending == 0 {
		close(t.done)
	}
	return true
}

func (t *Tracker) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending == 0
}

func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Wait blocks until page is ready or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		if t.pending == 0 {
			t.mu.Unlock()
			return nil
		}
		done := t.done
		t.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// NotifyWhenReady returns true when page is ready now. Otherwise it arms
// a background waiter (at most one per tracker) and returns false. Once the
// waiter observes zero pending resources it calls onReady, but only if guard
// still holds at that moment.
func (t *Tracker) NotifyWhenReady(guard func() bool, onReady func()) bool {
	t.mu.Lock()
	if t.pending == 0 {
		t.mu.Unlock()
		return true
	}
	if t.armed {
		t.mu.Unlock()
		return false
	}
	t.armed = true
	t.mu.Unlock()

	go func() {
		for {
			t.mu.Lock()
			if t.pending == 0 {
				t.armed = false
				t.mu.Unlock()
				break
			}
			done := t.done
			t.mu.Unlock()
			<-done
		}
		if guard == nil || guard() {
			onReady()
		}
	}()
	return false
}
