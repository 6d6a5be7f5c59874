package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds helpers that are given no timeout.
const DefaultTimeout = 5 * time.Second

// deadliner is implemented by *testing.T. testing.B and testing.F have no
// deadline, so they always get the full timeout.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context cancelled when the test ends or timeout passes.
// Under go test -timeout the context expires a second before the test binary
// would be killed.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(deadliner); ok {
		if deadline, set := d.Deadline(); set {
			if left := time.Until(deadline) - time.Second; left > 0 && left < timeout {
				timeout = left
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
