// Package benchkit is a micro-benchmarking harness for timing a repeated
// block of code while excluding setup and teardown, and for collecting named
// event counters correlated per-iteration with the timing.
//
// The caller drives the measurement loop; benchkit only measures the region
// between Start and End. Counters are routed through the context returned by
// Start, so production code can call Incr unconditionally and it becomes a
// no-op outside a benchmark run:
//
//	bs, err := benchkit.Repeat(1000, "json decode")
//	if err != nil {
//		return err
//	}
//	var bench *benchkit.Benchmark
//	for b := range bs {
//		bench = b
//		data := makeFixture() // setup, not timed
//		ctx, scope, err := b.Start(context.Background())
//		if err != nil {
//			return err
//		}
//		decode(ctx, data) // timed; may call benchkit.Incr(ctx, ...)
//		scope.End()
//		cleanup(data) // teardown, not timed
//	}
//	report, err := bench.Summary()
package benchkit

import (
	"sync"
	"time"
)

// Clock is the time source used for elapsed-time measurement. It exists so
// tests can substitute a deterministic source; the default is time.Now, whose
// monotonic reading makes Sub safe against wall-clock adjustments.
type Clock func() time.Time

// Option configures a Benchmark.
type Option func(*Benchmark)

// WithClock replaces the default time source.
func WithClock(c Clock) Option {
	return func(b *Benchmark) {
		if c != nil {
			b.clock = c
		}
	}
}

// Benchmark accumulates timing samples and per-iteration counters across
// repeated uses of its timing scope. The scope protocol (Start/End) must be
// driven from a single goroutine; the query surface may be read concurrently
// and only ever observes committed rows.
type Benchmark struct {
	name  string
	clock Clock

	mu     sync.Mutex
	store  sampleStore
	active *Scope
}

// New creates a Benchmark with the given name. The name is informational
// only; it appears in Summary output and exported metrics.
func New(name string, opts ...Option) *Benchmark {
	b := &Benchmark{
		name:  name,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the benchmark's name.
func (b *Benchmark) Name() string {
	return b.name
}
