// Package completion aggregates "done" signals from a group of runs and
// reports the group exactly once.
package completion

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidCount = errors.New("sortsim: expected completion count must be at least 1")

// Tracker fires onDone once when expected runs have reported. After firing
// it is inert until Reset or Retarget.
type Tracker struct {
	mu       sync.Mutex
	expected int
	received int
	fired    bool
	done     chan struct{}
	onDone   func()
}

// New returns a tracker waiting for expected notifications. onDone may be
// nil when only Done or Wait is used.
func New(expected int, onDone func()) (*Tracker, error) {
	if expected < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, expected)
	}
	return &Tracker{
		expected: expected,
		done:     make(chan struct{}),
		onDone:   onDone,
	}, nil
}

// NotifyDone records one finished run. Notifications after the tracker
// fired are ignored.
func (t *Tracker) NotifyDone() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.received++
	if t.received < t.expected {
		t.mu.Unlock()
		return
	}
	t.fired = true
	close(t.done)
	fn := t.onDone
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Reset starts a new batch with the same expected count.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

// Retarget starts a new batch waiting for n notifications.
func (t *Tracker) Retarget(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expected = n
	t.reset()
	return nil
}

func (t *Tracker) reset() {
	t.received = 0
	if t.fired {
		t.done = make(chan struct{})
	}
	t.fired = false
}

// Done is closed when the current batch completes. The channel is replaced
// by Reset and Retarget once it has been closed.
func (t *Tracker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Wait blocks until the current batch completes or ctx is cancelled.
func (t *Tracker) Wait(ctx context.Context) error {
	select {
	case <-t.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Tracker) Received() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.received
}

func (t *Tracker) Expected() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expected
}

func (t *Tracker) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}
