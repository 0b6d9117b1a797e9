package suite

import (
	"fmt"
	"runtime"
)

// MemoryStats holds memory usage statistics captured around a workload run.
type MemoryStats struct {
	Alloc         uint64  // Currently allocated bytes
	TotalAlloc    uint64  // Total allocated bytes (cumulative)
	Sys           uint64  // Total bytes from system
	NumGC         uint32  // Number of GC runs
	GCCPUFraction float64 // Fraction of CPU time spent in GC
}

// GetMemoryStats returns current memory statistics.
func GetMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryStats{
		Alloc:         m.Alloc,
		TotalAlloc:    m.TotalAlloc,
		Sys:           m.Sys,
		NumGC:         m.NumGC,
		GCCPUFraction: m.GCCPUFraction,
	}
}

// String returns a formatted string representation of memory stats.
func (m MemoryStats) String() string {
	return fmt.Sprintf("Alloc: %d KB, Total: %d KB, Sys: %d KB, GC: %d (%.2f%% CPU)",
		m.Alloc/1024,
		m.TotalAlloc/1024,
		m.Sys/1024,
		m.NumGC,
		m.GCCPUFraction*100)
}
