package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	// settleDeadline bounds how long Check waits for goroutines wound down
	// by Stop calls to actually exit.
	settleDeadline = 1 * time.Second
	settlePoll     = 10 * time.Millisecond
)

// GoroutineChecker snapshots the goroutine count so a test can verify that
// a component's Stop tears everything down.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count. Take the snapshot
// before starting the component under test.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settlePoll)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check polls until the goroutine count settles back to the snapshot (plus
// tolerance) or the deadline passes, then reports any excess as a leak.
// Polling instead of a fixed sleep keeps ticker and hub shutdown tests from
// flaking on slow runners.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(settleDeadline)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		runtime.GC()
		time.Sleep(settlePoll)
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// MemoryChecker snapshots heap usage for tests that churn subscribers or
// zones and must not retain them.
type MemoryChecker struct {
	before runtime.MemStats
	t      testing.TB
}

func NewMemoryChecker(t testing.TB) *MemoryChecker {
	t.Helper()

	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &MemoryChecker{
		before: m,
		t:      t,
	}
}

// Check reports heap growth beyond maxGrowthMB after a GC.
func (m *MemoryChecker) Check(maxGrowthMB float64) {
	m.t.Helper()

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	const mb = 1024 * 1024
	growthMB := (float64(after.Alloc) - float64(m.before.Alloc)) / mb
	if growthMB > maxGrowthMB {
		m.t.Errorf("memory growth: before=%.2fMB, after=%.2fMB, growth=%.2fMB (max=%.2fMB)",
			float64(m.before.Alloc)/mb, float64(after.Alloc)/mb, growthMB, maxGrowthMB)
	}
}
