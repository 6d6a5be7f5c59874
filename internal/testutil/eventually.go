package testutil

import (
	"testing"
	"time"
)

// Eventually fails the test unless cond holds within timeout, checking it
// every interval. what names the awaited condition in the failure.
func Eventually(t testing.TB, timeout, interval time.Duration, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %s waiting for %s", timeout, what)
		}
		time.Sleep(interval)
	}
}
