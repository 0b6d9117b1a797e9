package benchkit

import (
	"fmt"
	"iter"
)

// Repeat returns a sequence that yields the SAME Benchmark exactly n times.
// The shared instance is deliberate: every loop iteration times one scope
// use on a single accumulating benchmark, which keeps setup and teardown
// code outside the measured region by construction. Calling Repeat again
// creates a fresh Benchmark with an empty store.
//
// n must be positive; otherwise Repeat fails with ErrInvalidArgument. The
// driver itself does no timing.
func Repeat(n int, name string, opts ...Option) (iter.Seq[*Benchmark], error) {
	if n <= 0 {
		return nil, fmt.Errorf("iteration count must be positive, got %d: %w", n, ErrInvalidArgument)
	}
	b := New(name, opts...)
	return func(yield func(*Benchmark) bool) {
		for range n {
			if !yield(b) {
				return
			}
		}
	}, nil
}
