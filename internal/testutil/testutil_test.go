package testutil

import (
	"testing"
	"time"
)

// TestContextUsesRequestedTimeout verifies the deadline follows the timeout argument.
func TestContextUsesRequestedTimeout(t *testing.T) {
	ctx := Context(t, 3*time.Second)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if left := time.Until(deadline); left <= 0 || left > 3*time.Second {
		t.Fatalf("unexpected time left %s", left)
	}
}

// TestContextAcceptsBenchmarks verifies helpers taking testing.TB work from a benchmark.
func TestContextAcceptsBenchmarks(t *testing.T) {
	var left time.Duration
	testing.Benchmark(func(b *testing.B) {
		deadline, ok := Context(b, 0).Deadline()
		if !ok {
			b.Fatalf("expected a deadline")
		}
		left = time.Until(deadline)
	})
	if left <= 0 || left > DefaultTimeout {
		t.Fatalf("expected the default timeout, got %s", left)
	}
}

// TestFixedClockMovesOnlyOnSet verifies Now repeats until Set is called.
func TestFixedClockMovesOnlyOnSet(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := NewFixedClock(start)
	if !clock.Now().Equal(start) || !clock.Now().Equal(start) {
		t.Fatalf("expected a frozen clock")
	}
	later := start.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Fatalf("expected %s, got %s", later, clock.Now())
	}
}

// TestEventuallyWaitsForCondition verifies the condition is polled until it holds.
func TestEventuallyWaitsForCondition(t *testing.T) {
	calls := 0
	Eventually(t, time.Second, time.Millisecond, func() bool {
		calls++
		return calls == 3
	}, "the third poll")
	if calls != 3 {
		t.Fatalf("expected 3 polls, got %d", calls)
	}
}
