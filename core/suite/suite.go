// ABOUTME: Declarative check suites in the shape of a BDD test file
// ABOUTME: Suites nest, share beforeEach hooks and run their cases in declaration order

package suite

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Func is the body of a case or hook
type Func func(t *T)

// Case is one named check
type Case struct {
	Name string
	Run  Func
}

// Suite groups cases. BeforeAll runs once before the first case; if it
// fails, every case in the suite (and its children) fails with it.
// BeforeEach runs before every case, after the hooks of enclosing suites.
type Suite struct {
	Name       string
	BeforeAll  Func
	BeforeEach Func
	Cases      []Case
	Suites     []Suite
}

// T is handed to every case and hook. It satisfies testify's
// assert.TestingT and require.TestingT, so checks can use testify directly.
type T struct {
	ctx context.Context

	mu       sync.Mutex
	failures []string
	cleanups []func()
	done     bool
}

func newT() *T {
	return &T{ctx: context.Background()}
}

// Context is bounded by the runner's step timeout
func (t *T) Context() context.Context {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx
}

func (t *T) setContext(ctx context.Context) {
	t.mu.Lock()
	t.ctx = ctx
	t.mu.Unlock()
}

// Errorf records a failure and lets the case continue
func (t *T) Errorf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.failures = append(t.failures, fmt.Sprintf(format, args...))
}

// FailNow stops the current case or hook. It must be called from the
// goroutine running the case.
func (t *T) FailNow() {
	runtime.Goexit()
}

// Fatalf records a failure and stops the case
func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

// Helper is accepted for testify compatibility
func (t *T) Helper() {}

// Cleanup registers fn to run when the case or hook ends, before its
// result is recorded. Cleanups run last-registered first and may report
// failures.
func (t *T) Cleanup(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cleanups = append(t.cleanups, fn)
}

func (t *T) popCleanup() func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.cleanups)
	if n == 0 {
		return nil
	}
	fn := t.cleanups[n-1]
	t.cleanups = t.cleanups[:n-1]
	return fn
}

// Failed reports whether any failure was recorded
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.failures) > 0
}

// finish freezes the failure list; late reports from stray goroutines are dropped
func (t *T) finish() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
	out := make([]string, len(t.failures))
	copy(out, t.failures)
	return out
}
