// Package timefmt formats durations adaptively by magnitude for benchmark
// reports. Values are computed in seconds throughout the harness and only
// scaled at display time.
package timefmt

import (
	"fmt"
	"time"
)

var subSecondUnits = []string{"msec", "usec", "nsec"}

// Seconds formats a non-negative duration given in seconds, scaling to the
// largest unit in which the value is at least 1 (sec, msec, usec, nsec).
func Seconds(s float64) string {
	if s >= 1 {
		return fmt.Sprintf("%.2f sec", s)
	}
	factor := 1.0
	for _, unit := range subSecondUnits {
		factor *= 1e3
		if s*factor >= 1 {
			return fmt.Sprintf("%.2f %s", s*factor, unit)
		}
	}
	return fmt.Sprintf("%.2f nsec", s*factor)
}

// Duration formats d with the same scaling as Seconds.
func Duration(d time.Duration) string {
	return Seconds(d.Seconds())
}
