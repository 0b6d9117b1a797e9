// Package stats provides the small set of summary statistics the harness
// reports: arithmetic mean and interpolated percentiles.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs. xs must be non-empty; callers
// validate emptiness at the API boundary.
func Mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Percentile returns the p-th percentile (0-100) of xs using linear
// interpolation between order statistics for non-integral ranks (numpy's
// default method). xs must be non-empty and p within [0, 100]; both are
// validated at the API boundary.
func Percentile(xs []float64, p float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
