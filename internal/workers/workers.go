package workers

import (
	"runtime"
)

// MaxWorkers caps automatically sized pools. Each thumbnail worker may hold
// a decoded full-size image in memory.
const MaxWorkers = 16

// perCPU scales the usable CPU count by multiplier, with a floor of one and
// an optional cap (0 for none). GOMAXPROCS follows container CPU limits.
func perCPU(multiplier float64, limit int) int {
	workers := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}
	return workers
}

// ForCPU returns worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return perCPU(1.0, limit)
}

// Resolve turns a requested worker count into the one to use:
//   - n > 0: n, capped at MaxWorkers
//   - n == 0: one per CPU
//   - n < 0: 1 (sequential)
func Resolve(n int) int {
	switch {
	case n > MaxWorkers:
		return MaxWorkers
	case n > 0:
		return n
	case n == 0:
		return ForCPU(MaxWorkers)
	default:
		return 1
	}
}
