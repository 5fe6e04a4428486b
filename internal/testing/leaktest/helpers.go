// Package leaktest detects goroutines left running by background components
// such as worker pools, expiry timers and the retrying event publisher.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettle is how long Check waits for goroutines to exit
const DefaultSettle = 500 * time.Millisecond

const pollInterval = 10 * time.Millisecond

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t      testing.TB
	before int
	settle time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		t:      t,
		before: runtime.NumGoroutine(),
		settle: DefaultSettle,
	}
}

// Check fails the test when more than tolerance goroutines are still running
// after the settle period.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if after, ok := waitFor(target, g.settle); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, after, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails when it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if current, ok := waitFor(target, timeout); !ok {
		t.Errorf("timed out waiting for goroutines: current=%d target=%d", current, target)
	}
}

func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
