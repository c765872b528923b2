// Package parallel provides parallel execution utilities for the soft-DTW kernels.
//
// Work is dispatched onto persistent worker pools (one per worker count) so that
// the many short fan-outs of a wavefront sweep do not pay goroutine spawn cost.
package parallel

import (
	"runtime"
	"sync"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum number of items before fanning out.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 2,
	}
}

// Sequential returns a config that never fans out.
func Sequential() Config {
	return Config{NumWorkers: 1}
}

// pools caches one persistent pool per worker count for the process lifetime.
var pools sync.Map // int -> *workerpool.Pool

func poolFor(workers int) *workerpool.Pool {
	if p, ok := pools.Load(workers); ok {
		return p.(*workerpool.Pool)
	}
	p := workerpool.New(workers)
	actual, loaded := pools.LoadOrStore(workers, p)
	if loaded {
		p.Close()
	}
	return actual.(*workerpool.Pool)
}

// serial reports whether n items should run on the calling goroutine.
func (c Config) serial(n int) bool {
	return !c.Enabled || c.NumWorkers <= 1 || n < c.MinChunkSize || n < 2
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Items are handed out one at a time, which balances uneven work such as
// batch elements with different series lengths.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if cfg.serial(n) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}
	poolFor(cfg.NumWorkers).ParallelForAtomic(n, f)
}

// ForRange executes f over contiguous [start, end) chunks covering [0, n).
// Used for uniform work such as the cells of one anti-diagonal.
func ForRange(n int, f func(start, end int), cfg Config) {
	if cfg.serial(n) {
		if n > 0 {
			f(0, n)
		}
		return
	}
	poolFor(cfg.NumWorkers).ParallelFor(n, f)
}
