// Package workerpool implements the fixed-cardinality worker pool and
// barrier primitives backing Δ-stepping: a dynamic, chunked parallel-for
// over an item range, a per-worker fan-out for phases that operate on
// each worker's own state rather than on items, and an atomic-min
// reduction used for the bucket vote.
//
// There is no cooperative scheduler or event loop here — each call
// spawns up to n goroutines and joins them before returning, which is
// the barrier the Δ-stepping state machine needs between phases.
package workerpool

import (
	"math"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-cardinality worker pool. It holds no goroutines
// between calls; n only bounds how many run concurrently for a given
// ParallelFor / ForEachWorker call.
type Pool struct {
	n int
}

// New returns a pool that fans out across n workers. n < 1 is treated
// as 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{n: n}
}

// N returns the pool's worker cardinality.
func (p *Pool) N() int { return p.n }

// chunkSize is the granularity of dynamic work-stealing in ParallelFor,
// matching the 64-item chunks the Δ-stepping relax phase partitions
// its frontier into.
const chunkSize = 64

// ParallelFor partitions [0, items) into dynamic chunks of chunkSize
// and runs fn(workerIdx, i) for every i, across up to p.N() goroutines.
// Workers claim chunks via an atomic cursor (work-stealing): a worker
// that finishes its chunk early claims the next available one instead
// of idling, rather than each worker owning a fixed static slice.
// Blocks until every item has been processed.
func (p *Pool) ParallelFor(items int, fn func(workerIdx, i int)) {
	if items <= 0 {
		return
	}
	workers := p.n
	if workers > items {
		workers = (items + chunkSize - 1) / chunkSize
		if workers < 1 {
			workers = 1
		}
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			for {
				start := int(cursor.Add(chunkSize) - chunkSize)
				if start >= items {
					return
				}
				end := start + chunkSize
				if end > items {
					end = items
				}
				for i := start; i < end; i++ {
					fn(workerIdx, i)
				}
			}
		}(w)
	}
	wg.Wait()
}

// ForEachWorker runs fn(workerIdx) once per worker index in [0, p.N()),
// concurrently, and blocks until all have returned. Used for phases
// that act on each worker's own local state (fusion, vote, gather)
// rather than on a shared item range.
func (p *Pool) ForEachWorker(fn func(workerIdx int)) {
	var wg sync.WaitGroup
	for w := 0; w < p.n; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			fn(workerIdx)
		}(w)
	}
	wg.Wait()
}

// AtomicMinInt64 repeatedly CASes *target down to candidate if
// candidate is smaller, looping until it either wins or observes a
// value already <= candidate. The vote-reduction step uses this
// instead of a coarse lock: the critical-section-based reduction some
// reference implementations use is a correctness crutch, not part of
// the contract.
func AtomicMinInt64(target *atomic.Int64, candidate int64) {
	for {
		old := target.Load()
		if candidate >= old {
			return
		}
		if target.CompareAndSwap(old, candidate) {
			return
		}
	}
}

// AtomicMinFloat64Bits CASes the float64 stored (as raw bits) in
// *target down to candidate if candidate is smaller, and reports
// whether it won. Valid only for non-negative candidates: IEEE-754 bit
// patterns of non-negative floats order the same as the floats
// themselves, which lets a plain integer CAS do the job without a
// separate float decode on the hot path.
func AtomicMinFloat64Bits(target *atomic.Uint64, candidate float64) bool {
	if candidate < 0 {
		panic("workerpool: AtomicMinFloat64Bits requires a non-negative candidate")
	}
	bits := math.Float64bits(candidate)
	for {
		old := target.Load()
		if bits >= old {
			return false
		}
		if target.CompareAndSwap(old, bits) {
			return true
		}
	}
}
