// ABOUTME: Runner executes check suites sequentially with per-step timeouts
// ABOUTME: Each case is isolated: failures, panics and stalls only fail that case

package suite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedreader/core/interfaces"
)

// DefaultTimeout bounds each hook and case, including waits on feed loads
const DefaultTimeout = 5 * time.Second

// Result is the outcome of one case
type Result struct {
	Suite    string        `json:"suite"`
	Case     string        `json:"case"`
	Passed   bool          `json:"passed"`
	Failures []string      `json:"failures,omitempty"`
	Duration time.Duration `json:"duration"`
}

// FullName joins the suite path and case name
func (r Result) FullName() string {
	return r.Suite + " " + r.Case
}

// Report collects the results of a run
type Report struct {
	Results  []Result      `json:"results"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// OK reports whether every case passed
func (r Report) OK() bool {
	return r.Failed == 0
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
}

// Runner executes suites
type Runner struct {
	timeout time.Duration
	logger  interfaces.Logger
}

// NewRunner creates a runner. A non-positive timeout uses DefaultTimeout.
func NewRunner(timeout time.Duration, logger interfaces.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout, logger: logger}
}

// Run executes the suites in order and returns the report
func (r *Runner) Run(ctx context.Context, suites ...Suite) Report {
	start := time.Now()
	var report Report

	for _, s := range suites {
		r.runSuite(ctx, s, nil, nil, &report)
	}

	report.Duration = time.Since(start)
	r.log(report)
	return report
}

func (r *Runner) runSuite(ctx context.Context, s Suite, path []string, hooks []Func, report *Report) {
	path = append(append([]string(nil), path...), s.Name)
	name := strings.Join(path, " ")

	var beforeAllFailures []string
	if s.BeforeAll != nil {
		t := newT()
		ok := r.step(ctx, t, s.BeforeAll, "beforeAll")
		r.cleanup(t)
		if !ok || t.Failed() {
			beforeAllFailures = t.finish()
		}
	}

	if s.BeforeEach != nil {
		hooks = append(append([]Func(nil), hooks...), s.BeforeEach)
	}

	if beforeAllFailures != nil {
		r.failAll(s, name, beforeAllFailures, report)
		return
	}

	for _, c := range s.Cases {
		report.add(r.runCase(ctx, name, c, hooks))
	}

	for _, child := range s.Suites {
		r.runSuite(ctx, child, path, hooks, report)
	}
}

func (r *Runner) failAll(s Suite, name string, failures []string, report *Report) {
	for _, c := range s.Cases {
		report.add(Result{Suite: name, Case: c.Name, Failures: failures})
	}
	for _, child := range s.Suites {
		r.failAll(child, name+" "+child.Name, failures, report)
	}
}

func (r *Runner) runCase(ctx context.Context, suiteName string, c Case, hooks []Func) Result {
	start := time.Now()
	t := newT()

	for _, hook := range hooks {
		if !r.step(ctx, t, hook, "beforeEach") || t.Failed() {
			return r.finishCase(suiteName, c, t, start)
		}
	}

	if c.Run != nil {
		r.step(ctx, t, c.Run, "case")
	}

	return r.finishCase(suiteName, c, t, start)
}

func (r *Runner) finishCase(suiteName string, c Case, t *T, start time.Time) Result {
	r.cleanup(t)
	return r.result(suiteName, c, t, start)
}

// cleanup runs t's registered cleanups. Each gets its own goroutine so
// FailNow only ends that cleanup; they are not bounded by the step timeout.
func (r *Runner) cleanup(t *T) {
	for fn := t.popCleanup(); fn != nil; fn = t.popCleanup() {
		finished := make(chan struct{})
		go func() {
			defer close(finished)
			defer func() {
				if p := recover(); p != nil {
					t.Errorf("cleanup panicked: %v", p)
				}
			}()
			fn()
		}()
		<-finished
	}
}

func (r *Runner) result(suiteName string, c Case, t *T, start time.Time) Result {
	failures := t.finish()
	res := Result{
		Suite:    suiteName,
		Case:     c.Name,
		Passed:   len(failures) == 0,
		Failures: failures,
		Duration: time.Since(start),
	}

	if r.logger != nil {
		fields := map[string]interface{}{
			"suite":       suiteName,
			"case":        c.Name,
			"duration_ms": res.Duration.Milliseconds(),
		}
		if res.Passed {
			r.logger.Debug("Check passed", fields)
		} else {
			fields["failures"] = failures
			r.logger.Warn("Check failed", fields)
		}
	}

	return res
}

// step runs fn on its own goroutine under the step timeout. It returns
// false when fn stopped early: FailNow, a panic, or a timeout.
func (r *Runner) step(ctx context.Context, t *T, fn Func, kind string) bool {
	stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	t.setContext(stepCtx)

	finished := make(chan bool, 1)
	go func() {
		completed := false
		defer func() {
			if p := recover(); p != nil {
				t.Errorf("%s panicked: %v", kind, p)
			} else if !completed && !t.Failed() {
				t.Errorf("%s stopped without reporting a failure", kind)
			}
			finished <- completed
		}()
		fn(t)
		completed = true
	}()

	select {
	case ok := <-finished:
		return ok
	case <-stepCtx.Done():
		// The step may still be running; its later reports are dropped by finish.
		t.Errorf("%s did not complete within %s: %v", kind, r.timeout, stepCtx.Err())
		return false
	}
}

func (r *Runner) log(report Report) {
	if r.logger == nil {
		return
	}
	r.logger.Info("Checks finished", map[string]interface{}{
		"passed":      report.Passed,
		"failed":      report.Failed,
		"duration_ms": report.Duration.Milliseconds(),
	})
}

// Summary renders the report one line per case
func (r Report) Summary() string {
	var b strings.Builder
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %s\n", status, res.FullName())
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "      %s\n", f)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed\n", r.Passed, r.Failed)
	return b.String()
}
