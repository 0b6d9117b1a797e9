package benchkit

import (
	"sort"
	"time"
)

// sample is one committed row: the elapsed time of one scope use plus the
// counters incremented while that scope was active. Rows are immutable once
// appended.
type sample struct {
	elapsed  time.Duration
	counters map[string]int64
}

// sampleStore is the append-only per-run record of samples, one row per
// completed scope use. It is owned and mutated only by its Benchmark.
type sampleStore struct {
	rows []sample
}

func (s *sampleStore) append(row sample) {
	s.rows = append(s.rows, row)
}

func (s *sampleStore) len() int {
	return len(s.rows)
}

func (s *sampleStore) durations() []time.Duration {
	out := make([]time.Duration, len(s.rows))
	for i, row := range s.rows {
		out[i] = row.elapsed
	}
	return out
}

// counterNames returns the union of counter names across all rows, sorted.
func (s *sampleStore) counterNames() []string {
	seen := make(map[string]struct{})
	for _, row := range s.rows {
		for name := range row.counters {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// counterValues returns one value per row for the named counter, with 0 for
// rows in which the counter was never incremented.
func (s *sampleStore) counterValues(name string) []int64 {
	out := make([]int64, len(s.rows))
	for i, row := range s.rows {
		out[i] = row.counters[name]
	}
	return out
}
