// Package suite runs named workloads under the benchkit harness and
// collects per-workload results, including memory statistics around each
// run.
package suite

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/MeKo-Tech/benchkit"
)

// Workload is a named function benchmarked by a Suite. The context passed to
// Fn carries the active timing scope, so Fn (and anything it calls) can use
// benchkit.Incr to record per-iteration counters.
type Workload struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Result holds the outcome of running one workload.
type Result struct {
	Name         string
	Iterations   int
	Mean         time.Duration
	Summary      string
	MemoryBefore MemoryStats
	MemoryAfter  MemoryStats
	Benchmark    *benchkit.Benchmark
	Err          error
}

// String returns a formatted one-line representation of the result.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: ERROR after %d iterations - %v", r.Name, r.Iterations, r.Err)
	}
	memDiff := int64(r.MemoryAfter.Alloc) - int64(r.MemoryBefore.Alloc) //nolint:gosec // display only
	return fmt.Sprintf("%s: %d iterations, mean: %v, mem: %+d KB",
		r.Name, r.Iterations, r.Mean, memDiff/1024)
}

// Option configures a Suite.
type Option func(*Suite)

// WithWarmup runs k untimed iterations of each workload before measurement
// starts.
func WithWarmup(k int) Option {
	return func(s *Suite) {
		if k > 0 {
			s.warmup = k
		}
	}
}

// WithObserver registers a callback invoked with each workload's Benchmark
// just before its measurement loop starts. Useful for wiring exporters that
// read committed rows while the run is in flight.
func WithObserver(fn func(*benchkit.Benchmark)) Option {
	return func(s *Suite) {
		s.observer = fn
	}
}

// Suite manages multiple workloads.
type Suite struct {
	workloads []Workload
	warmup    int
	observer  func(*benchkit.Benchmark)

	mu      sync.Mutex
	results []Result
}

// New creates an empty suite.
func New(opts ...Option) *Suite {
	s := &Suite{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers a workload.
func (s *Suite) Add(name string, fn func(ctx context.Context) error) {
	s.workloads = append(s.workloads, Workload{Name: name, Fn: fn})
}

// Names returns the registered workload names in registration order.
func (s *Suite) Names() []string {
	names := make([]string, len(s.workloads))
	for i, w := range s.workloads {
		names[i] = w.Name
	}
	return names
}

// Run benchmarks a single registered workload with the given number of
// iterations. Harness misuse (unknown name, non-positive iterations) is
// returned as an error; a failure inside the workload itself is reported in
// Result.Err with the rows committed so far retained.
func (s *Suite) Run(name string, iterations int) (Result, error) {
	for _, w := range s.workloads {
		if w.Name == name {
			return s.runWorkload(w, iterations)
		}
	}
	return Result{}, fmt.Errorf("workload %q not found", name)
}

// RunAll benchmarks every registered workload and stores the results.
func (s *Suite) RunAll(iterations int) ([]Result, error) {
	results := make([]Result, 0, len(s.workloads))
	for _, w := range s.workloads {
		result, err := s.runWorkload(w, iterations)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()
	return results, nil
}

// Results returns the results of the last RunAll.
func (s *Suite) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// PrintResults writes the summaries of the last RunAll to w.
func (s *Suite) PrintResults(w io.Writer) {
	for _, result := range s.Results() {
		if result.Err != nil {
			fmt.Fprintln(w, result.String())
			continue
		}
		fmt.Fprintln(w, result.Summary)
	}
}

func (s *Suite) runWorkload(w Workload, iterations int) (Result, error) {
	bs, err := benchkit.Repeat(iterations, w.Name)
	if err != nil {
		return Result{}, err
	}

	ctx := context.Background()
	for range s.warmup {
		if err := w.Fn(ctx); err != nil {
			return Result{Name: w.Name, Err: fmt.Errorf("warmup: %w", err)}, nil
		}
	}

	// Settle the heap so the memory delta reflects the workload.
	runtime.GC()
	before := GetMemoryStats()

	var bench *benchkit.Benchmark
	var runErr error
	for b := range bs {
		bench = b
		if s.observer != nil && b.Len() == 0 {
			s.observer(b)
		}
		if runErr = b.Time(ctx, w.Fn); runErr != nil {
			break
		}
	}
	after := GetMemoryStats()

	result := Result{
		Name:         w.Name,
		Iterations:   bench.Len(),
		MemoryBefore: before,
		MemoryAfter:  after,
		Benchmark:    bench,
		Err:          runErr,
	}
	if bench.Len() > 0 {
		if result.Mean, err = bench.Mean(); err != nil {
			return Result{}, err
		}
		if result.Summary, err = bench.Summary(); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}
