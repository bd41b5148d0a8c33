package paginate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTrackerCounting(t *testing.T) {
	tr := NewTracker()
	if !tr.IsReady() {
		t.Fatal("new tracker is not ready")
	}

	tr.AddPendingResource()
	tr.AddPendingResource()
	if tr.IsReady() || tr.Pending() != 2 {
		t.Fatalf("IsReady() = %v, Pending() = %d, want false, 2", tr.IsReady(), tr.Pending())
	}

	if !tr.ResourceCompleted() || tr.IsReady() {
		t.Fatal("tracker ready with one resource still pending")
	}
	if !tr.ResourceCompleted() || !tr.IsReady() {
		t.Fatal("tracker not ready after all resources completed")
	}

	if tr.ResourceCompleted() {
		t.Error("ResourceCompleted() at zero = true, want false")
	}
	if tr.Pending() != 0 {
		t.Errorf("Pending() = %d after extra completion", tr.Pending())
	}

	// re-arming from zero is legal
	tr.AddPendingResource()
	if tr.IsReady() {
		t.Error("re-armed tracker reports ready")
	}
	tr.ResourceCompleted()
	if !tr.IsReady() {
		t.Error("re-armed tracker did not become ready")
	}
}

func TestTrackerWait(t *testing.T) {
	tr := NewTracker()
	if err := tr.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() on ready tracker error = %v", err)
	}

	tr.AddPendingResource()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := tr.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait() error = %v, want deadline exceeded", err)
	}

	done := make(chan error, 1)
	go func() { done <- tr.Wait(context.Background()) }()
	tr.ResourceCompleted()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after completion")
	}
}

func TestNotifyWhenReady(t *testing.T) {
	always := func() bool { return true }

	t.Run("ready tracker does not call back", func(t *testing.T) {
		tr := NewTracker()
		called := false
		if !tr.NotifyWhenReady(always, func() { called = true }) {
			t.Error("NotifyWhenReady() = false for ready tracker")
		}
		time.Sleep(5 * time.Millisecond)
		if called {
			t.Error("onReady called for tracker with no resources")
		}
	})

	t.Run("fires once after last completion", func(t *testing.T) {
		tr := NewTracker()
		tr.AddPendingResource()
		tr.AddPendingResource()

		var calls atomic.Int32
		fired := make(chan struct{}, 4)
		onReady := func() {
			calls.Add(1)
			fired <- struct{}{}
		}
		if tr.NotifyWhenReady(always, onReady) {
			t.Fatal("NotifyWhenReady() = true with pending resources")
		}
		// second request while armed must not schedule another waiter
		if tr.NotifyWhenReady(always, onReady) {
			t.Fatal("NotifyWhenReady() = true with pending resources")
		}

		tr.ResourceCompleted()
		select {
		case <-fired:
			t.Fatal("onReady fired with resource still pending")
		case <-time.After(5 * time.Millisecond):
		}

		tr.ResourceCompleted()
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("onReady did not fire")
		}
		time.Sleep(5 * time.Millisecond)
		if n := calls.Load(); n != 1 {
			t.Errorf("onReady called %d times, want 1", n)
		}
	})

	t.Run("guard suppresses callback", func(t *testing.T) {
		tr := NewTracker()
		tr.AddPendingResource()

		guarded := make(chan struct{})
		called := make(chan struct{}, 1)
		tr.NotifyWhenReady(func() bool {
			close(guarded)
			return false
		}, func() { called <- struct{}{} })
		tr.ResourceCompleted()

		select {
		case <-guarded:
		case <-time.After(2 * time.Second):
			t.Fatal("guard was not consulted")
		}
		select {
		case <-called:
			t.Error("onReady called although guard failed")
		case <-time.After(5 * time.Millisecond):
		}
	})

	t.Run("can be armed again", func(t *testing.T) {
		tr := NewTracker()
		fired := make(chan struct{}, 2)
		for range 2 {
			tr.AddPendingResource()
			tr.NotifyWhenReady(always, func() { fired <- struct{}{} })
			tr.ResourceCompleted()
			select {
			case <-fired:
			case <-time.After(2 * time.Second):
				t.Fatal("onReady did not fire")
			}
			waitFor(t, "waiter to disarm", func() bool {
				tr.mu.Lock()
				defer tr.mu.Unlock()
				return !tr.armed
			})
		}
	})
}

func TestCursor(t *testing.T) {
	var c Cursor
	c.Reset(7)
	if !c.Is(7, 0) {
		t.Fatal("Reset() did not point at first page")
	}

	gen, idx := c.Exchange(7, 3)
	if gen != 7 || idx != 0 {
		t.Errorf("Exchange() = %d, %d, want 7, 0", gen, idx)
	}
	if !c.Is(7, 3) || c.Is(7, 0) || c.Is(8, 3) {
		t.Error("Is() does not match exchanged position")
	}

	c.Exchange(1<<32-1, 1<<31)
	if gen, idx := c.Load(); gen != 1<<32-1 || idx != 1<<31 {
		t.Errorf("Load() = %d, %d", gen, idx)
	}
}
