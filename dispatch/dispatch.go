// Package dispatch runs posted functions sequentially on a single goroutine.
//
// Pagination state and page visuals are only ever touched from that goroutine
// (render thread). Background work posts its results here instead of mutating
// shared state directly. Posting never blocks, there is no backpressure.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrStopped is returned by Do when dispatcher loop has exited.
var ErrStopped = errors.New("dispatcher stopped")

type Dispatcher struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
	quit    chan struct{}
	log     *zap.Logger
}

func New(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		log:  log.Named("dispatch"),
	}
}

// Post queues fn for execution on the render thread. Functions posted after
// loop exited are dropped.
func (d *Dispatcher) Post(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		d.log.Debug("Dispatcher stopped, dropping task")
		return
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Do runs fn on the render thread and waits for its result. It must not be
// called from a function already running on the render thread.
func (d *Dispatcher) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return ErrStopped
	}

	d.Post(func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("render thread task panicked: %v", r)
			}
		}()
		done <- fn()
	})

	select {
	case err := <-done:
		return err
	case <-d.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns number of queued functions.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Run executes posted functions in order until ctx is done. Functions queued
// at that moment are discarded.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer func() {
		d.mu.Lock()
		if !d.stopped {
			d.stopped = true
			close(d.quit)
		}
		dropped := len(d.queue)
		d.queue = nil
		d.mu.Unlock()
		if dropped > 0 {
			d.log.Debug("Discarding queued tasks", zap.Int("count", dropped))
		}
	}()

	for {
		for {
			d.mu.Lock()
			if len(d.queue) == 0 {
				d.mu.Unlock()
				break
			}
			fn := d.queue[0]
			d.queue[0] = nil
			d.queue = d.queue[1:]
			d.mu.Unlock()

			d.execute(fn)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		select {
		case <-d.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Dispatcher) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Render thread task panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	fn()
}
