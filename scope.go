package benchkit

import (
	"context"
	"fmt"
	"time"
)

// scopeKey is the context key under which Start stores the active scope.
type scopeKey struct{}

// Scope is one active use of a benchmark's timing scope. It is created by
// Start and committed by End; a Scope is not reusable.
type Scope struct {
	b        *Benchmark
	started  time.Time
	counters map[string]int64
	done     bool
}

// Start enters the timing scope: it starts the elapsed-time measurement,
// creates the pending row's empty counter set, and returns a context through
// which Incr and IncrN route into that row. The scope must be exited with
// End on every path, typically via defer, so that the row is committed even
// when the timed code panics or returns early.
//
// Start fails with ErrReentrantScope if this benchmark's scope is already
// active; the store is left unchanged. Scopes of different benchmarks may
// nest: the innermost context wins for counter routing, and returning to the
// outer context restores the outer benchmark.
func (b *Benchmark) Start(ctx context.Context) (context.Context, *Scope, error) {
	b.mu.Lock()
	if b.active != nil {
		b.mu.Unlock()
		return ctx, nil, fmt.Errorf("benchmark %q: %w", b.name, ErrReentrantScope)
	}
	s := &Scope{
		b:        b,
		counters: make(map[string]int64),
	}
	b.active = s
	b.mu.Unlock()

	// Read the clock last so scope bookkeeping is excluded from the
	// measured region.
	s.started = b.clock()
	return context.WithValue(ctx, scopeKey{}, s), s, nil
}

// End exits the timing scope: it stops the measurement, commits exactly one
// row (elapsed time plus accumulated counters) to the store, and deactivates
// the benchmark. End is idempotent so a deferred End composes with an
// explicit one. End never recovers a panic from the timed code; the row is
// committed and the panic continues to propagate.
func (s *Scope) End() {
	if s == nil || s.done {
		return
	}
	elapsed := s.b.clock().Sub(s.started)
	s.done = true

	b := s.b
	b.mu.Lock()
	b.store.append(sample{elapsed: elapsed, counters: s.counters})
	if b.active == s {
		b.active = nil
	}
	b.mu.Unlock()
}

// Time runs fn inside the timing scope and returns its error. The row is
// committed before the error (or a panic) reaches the caller, so a failed
// iteration's time is not silently dropped.
func (b *Benchmark) Time(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, s, err := b.Start(ctx)
	if err != nil {
		return err
	}
	defer s.End()
	return fn(ctx)
}

// scopeFromContext returns the scope carried by ctx, or nil.
func scopeFromContext(ctx context.Context) *Scope {
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}
