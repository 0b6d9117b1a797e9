package benchkit

import (
	"context"
	"fmt"
)

// Incr increments the named counter by one in the current row of the
// benchmark whose scope is carried by ctx. If ctx carries no active scope,
// Incr is a silent no-op: instrumented code needs no "am I being
// benchmarked" guard.
func Incr(ctx context.Context, name string) {
	if s := scopeFromContext(ctx); s != nil && !s.done {
		s.counters[name]++
	}
}

// IncrN increments the named counter by amount, which must be positive.
// A non-positive amount fails with ErrInvalidArgument regardless of whether
// a scope is active; otherwise IncrN follows the same no-op rule as Incr.
func IncrN(ctx context.Context, name string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("counter %q: increment amount must be positive, got %d: %w",
			name, amount, ErrInvalidArgument)
	}
	if s := scopeFromContext(ctx); s != nil && !s.done {
		s.counters[name] += amount
	}
	return nil
}
