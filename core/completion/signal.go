// ABOUTME: Exactly-once completion signal for asynchronous feed loads
// ABOUTME: Replaces callback registries with a value callers can wait on

package completion

import (
	"context"
	"fmt"
	"sync"

	"feedreader/core/errors"
)

// Signal reports the outcome of one asynchronous operation.
// It fires at most once; waiters block until it fires or their context ends.
type Signal struct {
	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	err   error
	fired bool
}

// New returns a signal that has not fired yet
func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Fire completes the signal with err (nil for success).
// Every call after the first returns ErrAlreadyCompleted and leaves the outcome unchanged.
func (s *Signal) Fire(err error) error {
	first := false
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.fired = true
		s.mu.Unlock()
		close(s.done)
		first = true
	})
	if !first {
		return errors.ErrAlreadyCompleted
	}
	return nil
}

// Done is closed once the signal fires
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Fired reports whether the signal has fired
func (s *Signal) Fired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// Err returns the outcome, or nil while the signal has not fired
func (s *Signal) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Wait blocks until the signal fires and returns its outcome.
// If ctx ends first the result wraps ErrLoadTimeout.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.Err()
	case <-ctx.Done():
		// Prefer a completed outcome if both are ready.
		select {
		case <-s.done:
			return s.Err()
		default:
		}
		return fmt.Errorf("%w: %v", errors.ErrLoadTimeout, ctx.Err())
	}
}

// Callback adapts the signal to a plain completion callback.
// The returned func fires the signal with a nil error.
func (s *Signal) Callback() func() {
	return func() { _ = s.Fire(nil) }
}
