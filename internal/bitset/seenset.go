package bitset

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// SeenSet is a single-threaded destination-seen marker reused across
// materialization calls by one worker. It is deliberately not atomic:
// each worker owns exactly one SeenSet, indexed by a stable worker
// index rather than OS thread identity (see Pool below), so there is
// never concurrent access to a given SeenSet.
type SeenSet struct {
	bits *bitset.BitSet
}

// NewSeenSet pre-sizes the underlying bitset to cap bits so steady-state
// materialization does not reallocate.
func NewSeenSet(cap int) *SeenSet {
	return &SeenSet{bits: bitset.New(uint(cap))}
}

func (s *SeenSet) Test(pos int) bool {
	return s.bits.Test(uint(pos))
}

func (s *SeenSet) Set(pos int) {
	s.bits.Set(uint(pos))
}

func (s *SeenSet) Clear(pos int) {
	s.bits.Clear(uint(pos))
}

// Pool hands out one SeenSet per stable worker index, growing lazily
// under a mutex (allocation is rare — at most max_threads times over
// the store's lifetime). Indexing by worker index rather than
// goroutine/OS-thread identity means the pool works the same whether
// materialization is called from a fixed worker pool or from ad-hoc
// goroutines, as long as each caller supplies a distinct, stable index.
type Pool struct {
	mu   sync.Mutex
	cap  int
	sets []*SeenSet
}

// NewPool builds a pool whose sets are each sized to cap bits.
func NewPool(cap int) *Pool {
	return &Pool{cap: cap}
}

// Get returns the SeenSet for worker index idx, allocating it (and any
// intervening slots) on first use.
func (p *Pool) Get(idx int) *SeenSet {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.sets) <= idx {
		p.sets = append(p.sets, nil)
	}
	if p.sets[idx] == nil {
		p.sets[idx] = NewSeenSet(p.cap)
	}
	return p.sets[idx]
}
