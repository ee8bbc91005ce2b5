package radixgraph

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/forwardstar/radixgraph/internal/workerpool"
)

// kMaxBin is the sentinel bucket id meaning "no bucket", i.e. the
// Δ-stepping frontier is exhausted.
const kMaxBin = int64(math.MaxInt64 / 2)

// kDistInf is the sentinel "unreached" distance. It is finite (rather
// than +Inf) so it survives being packed through atomic.Uint64 bit
// patterns and compared arithmetically without special-casing.
const kDistInf = math.MaxFloat64 / 2

// kBinSizeThreshold is the bucket-fusion size cutoff: a worker's local
// same-bucket work is folded back in eagerly, before the next barrier,
// as long as it stays below this size.
const kBinSizeThreshold = 1000

// frontierBuffer is the double-buffered frontier's per-parity storage.
// Only the gather phase writes to it concurrently (one goroutine per
// worker, each appending its bucket under mu); every other phase either reads
// it after a barrier or resets it from a single goroutine, so the
// mutex only ever sees gather-phase contention.
type frontierBuffer struct {
	mu   sync.Mutex
	data []int32
}

func (f *frontierBuffer) reset() {
	f.mu.Lock()
	f.data = f.data[:0]
	f.mu.Unlock()
}

func (f *frontierBuffer) appendMany(items []int32) {
	if len(items) == 0 {
		return
	}
	f.mu.Lock()
	f.data = append(f.data, items...)
	f.mu.Unlock()
}

// DeltaStep computes single-source shortest-path distances from srcID
// using the bucketed relaxation of Meyer & Sanders, with the
// bucket-fusion optimization, parallelized across a fixed worker pool.
// delta is the caller-supplied bucket width; weights are treated as
// non-negative float64s. Returns a slice indexed by dense offset, with
// math.Inf(1) for vertices unreachable from srcID.
//
// Per-iteration phases: WaitFrontier → Relax → Fuse → Vote → Barrier →
// Gather → Barrier → WaitFrontier, terminating when the current bucket
// id is kMaxBin at phase start.
func (g *Graph) DeltaStep(srcID uint64, delta float64) ([]float64, error) {
	if !g.enableQuery {
		return nil, ErrQueryDisabled
	}
	if delta <= 0 {
		return nil, ErrInvalidConfiguration
	}
	rec, ok := g.trie.Retrieve(srcID, false)
	if !ok {
		return nil, ErrSourceNotFound
	}

	n := g.table.Len()
	pool := workerpool.New(g.maxThreads)
	workers := pool.N()

	dist := make([]atomic.Uint64, n)
	infBits := math.Float64bits(kDistInf)
	for i := range dist {
		dist[i].Store(infBits)
	}
	dist[rec.Offset()].Store(math.Float64bits(0))

	localBins := make([]map[int64][]int32, workers)
	for i := range localBins {
		localBins[i] = make(map[int64][]int32)
	}

	var sharedIndex [2]atomic.Int64
	var frontier [2]frontierBuffer
	sharedIndex[0].Store(0)
	sharedIndex[1].Store(kMaxBin)
	frontier[0].data = []int32{rec.Offset()}

	bucketOf := func(d float64) int64 { return int64(d / delta) }

	relax := func(u int32, workerIdx int, currBin int64) {
		du := math.Float64frombits(dist[u].Load())
		if du < delta*float64(currBin) {
			return // already promoted past this bucket; stale occurrence
		}
		neighbours, ok := g.neighboursForWorker(u, workerIdx)
		if !ok {
			return
		}
		for _, nb := range neighbours {
			cand := du + float64(nb.Weight)
			if workerpool.AtomicMinFloat64Bits(&dist[nb.DestOffset], cand) {
				b := bucketOf(cand)
				localBins[workerIdx][b] = append(localBins[workerIdx][b], nb.DestOffset)
			}
		}
	}

	for iter := int64(0); ; iter++ {
		parity := iter & 1
		nextParity := (iter + 1) & 1
		currBin := sharedIndex[parity].Load()
		if currBin == kMaxBin {
			break
		}

		// Relax: partition the current frontier into dynamic chunks.
		curr := frontier[parity].data
		pool.ParallelFor(len(curr), func(workerIdx, i int) {
			relax(curr[i], workerIdx, currBin)
		})

		// Fuse: fold each worker's own curr-bucket work back in while
		// it stays small, instead of deferring it past the barrier.
		pool.ForEachWorker(func(workerIdx int) {
			bins := localBins[workerIdx]
			for {
				bucket := bins[currBin]
				if len(bucket) == 0 || len(bucket) >= kBinSizeThreshold {
					return
				}
				delete(bins, currBin)
				for _, u := range bucket {
					relax(u, workerIdx, currBin)
				}
			}
		})

		// Vote: reduce each worker's smallest non-empty bucket id
		// greater than currBin into sharedIndex[nextParity] via CAS,
		// not a coarse lock.
		sharedIndex[nextParity].Store(kMaxBin)
		pool.ForEachWorker(func(workerIdx int) {
			candidate := kMaxBin
			for b, v := range localBins[workerIdx] {
				if b > currBin && len(v) > 0 && b < candidate {
					candidate = b
				}
			}
			if candidate != kMaxBin {
				workerpool.AtomicMinInt64(&sharedIndex[nextParity], candidate)
			}
		})

		// Barrier: this parity's frontier is fully consumed.
		sharedIndex[parity].Store(kMaxBin)
		frontier[parity].reset()

		nextBin := sharedIndex[nextParity].Load()

		// Gather: every worker whose winning bucket matches nextBin
		// copies it into the next frontier buffer.
		if nextBin != kMaxBin {
			pool.ForEachWorker(func(workerIdx int) {
				bins := localBins[workerIdx]
				bucket := bins[nextBin]
				if len(bucket) == 0 {
					return
				}
				frontier[nextParity].appendMany(bucket)
				delete(bins, nextBin)
			})
		}
	}

	out := make([]float64, n)
	for i := range dist {
		d := math.Float64frombits(dist[i].Load())
		if d >= kDistInf {
			d = math.Inf(1)
		}
		out[i] = d
	}
	return out, nil
}
