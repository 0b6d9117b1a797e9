package benchkit

import (
	"fmt"
	"strings"
	"time"

	"github.com/MeKo-Tech/benchkit/internal/stats"
	"github.com/MeKo-Tech/benchkit/internal/timefmt"
)

// Summary column widths, carried over from the original report layout.
const (
	summaryNameWidth = 35
	summaryMeanWidth = 15
)

// Len returns the number of committed rows.
func (b *Benchmark) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.len()
}

// Durations returns a snapshot of the committed elapsed times in insertion
// order.
func (b *Benchmark) Durations() []time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.durations()
}

// Counters returns the names of all counters that appear in at least one
// committed row, sorted for determinism.
func (b *Benchmark) Counters() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.counterNames()
}

// CounterValues returns the per-row values of the named counter, one entry
// per committed row, with 0 for rows in which the counter was never
// incremented.
func (b *Benchmark) CounterValues(name string) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.counterValues(name)
}

// CounterMean returns the arithmetic mean of CounterValues(name). It fails
// with ErrEmptyStore if no rows have been committed.
func (b *Benchmark) CounterMean(name string) (float64, error) {
	values, err := b.counterSamples(name)
	if err != nil {
		return 0, err
	}
	return stats.Mean(values), nil
}

// CounterPercentile returns the p-th percentile (0-100) of
// CounterValues(name), using linear interpolation between order statistics.
func (b *Benchmark) CounterPercentile(name string, p float64) (float64, error) {
	if err := checkPercentile(p); err != nil {
		return 0, err
	}
	values, err := b.counterSamples(name)
	if err != nil {
		return 0, err
	}
	return stats.Percentile(values, p), nil
}

// CounterMeanString returns CounterMean formatted with two decimals.
// Counters are dimensionless, so no unit is attached.
func (b *Benchmark) CounterMeanString(name string) (string, error) {
	mean, err := b.CounterMean(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.2f", mean), nil
}

// CounterPercentileString returns CounterPercentile formatted with two
// decimals.
func (b *Benchmark) CounterPercentileString(name string, p float64) (string, error) {
	v, err := b.CounterPercentile(name, p)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.2f", v), nil
}

// Mean returns the arithmetic mean of the committed durations. It fails with
// ErrEmptyStore if no rows have been committed.
func (b *Benchmark) Mean() (time.Duration, error) {
	seconds, err := b.durationSamples()
	if err != nil {
		return 0, err
	}
	return secondsToDuration(stats.Mean(seconds)), nil
}

// Percentile returns the p-th percentile (0-100) of the committed durations,
// using the same interpolation rule as CounterPercentile.
func (b *Benchmark) Percentile(p float64) (time.Duration, error) {
	if err := checkPercentile(p); err != nil {
		return 0, err
	}
	seconds, err := b.durationSamples()
	if err != nil {
		return 0, err
	}
	return secondsToDuration(stats.Percentile(seconds, p)), nil
}

// PercentileRange returns the bounds [2.5th percentile, 97.5th percentile]
// of the committed durations: the symmetric two-tailed trim that leaves 95%
// of the samples inside.
func (b *Benchmark) PercentileRange() (low, high time.Duration, err error) {
	seconds, err := b.durationSamples()
	if err != nil {
		return 0, 0, err
	}
	low = secondsToDuration(stats.Percentile(seconds, 2.5))
	high = secondsToDuration(stats.Percentile(seconds, 97.5))
	return low, high, nil
}

// Summary returns the formatted report: the benchmark name, the mean
// duration, and the 95% range, followed by one line per recorded counter
// (sorted by name) with its mean and 95% range. It fails with ErrEmptyStore
// if no rows have been committed.
func (b *Benchmark) Summary() (string, error) {
	seconds, err := b.durationSamples()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeSummaryLine(&sb, b.name,
		timefmt.Seconds(stats.Mean(seconds)),
		timefmt.Seconds(stats.Percentile(seconds, 2.5)),
		timefmt.Seconds(stats.Percentile(seconds, 97.5)))

	for _, name := range b.Counters() {
		values := floatValues(b.CounterValues(name))
		sb.WriteByte('\n')
		writeSummaryLine(&sb, b.name+"."+name,
			fmt.Sprintf("%.2f", stats.Mean(values)),
			fmt.Sprintf("%.2f", stats.Percentile(values, 2.5)),
			fmt.Sprintf("%.2f", stats.Percentile(values, 97.5)))
	}
	return sb.String(), nil
}

func writeSummaryLine(sb *strings.Builder, name, mean, low, high string) {
	fmt.Fprintf(sb, "%-*s%-*s95%% range [%s, %s]",
		summaryNameWidth, name, summaryMeanWidth, mean, low, high)
}

// durationSamples snapshots the committed durations as seconds.
func (b *Benchmark) durationSamples() ([]float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store.len() == 0 {
		return nil, fmt.Errorf("benchmark %q: %w", b.name, ErrEmptyStore)
	}
	out := make([]float64, b.store.len())
	for i, d := range b.store.durations() {
		out[i] = d.Seconds()
	}
	return out, nil
}

// counterSamples snapshots the named counter's per-row values as floats.
func (b *Benchmark) counterSamples(name string) ([]float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store.len() == 0 {
		return nil, fmt.Errorf("benchmark %q: %w", b.name, ErrEmptyStore)
	}
	return floatValues(b.store.counterValues(name)), nil
}

func floatValues(values []int64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func checkPercentile(p float64) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("percentile must be in [0, 100], got %g: %w", p, ErrInvalidArgument)
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
