// Package trie implements the radix-partitioned vertex index: a
// fixed-depth trie keyed by a bit-partitioning of a sparse 64-bit
// external ID, providing concurrent insert-or-lookup and lookup that
// produce stable *vertex.Record pointers and dense offsets.
//
// The trie never frees a node or leaf slot once allocated: internal
// nodes and vertex records are allocated once and retained for the
// life of the store (tombstoning a vertex clears its offset, not its
// slot), which is what lets the edge log address destinations by
// offset without ever worrying about invalidation.
package trie

import (
	"fmt"
	"sync/atomic"

	"github.com/forwardstar/radixgraph/internal/bitset"
	"github.com/forwardstar/radixgraph/internal/vertex"
)

// node is one level of the trie. A slot in children is either empty,
// another *node (at non-leaf levels), or a *vertex.Record (at the leaf
// level); which is valid at a given level is determined entirely by
// that level's position in the trie, so no runtime tag is needed. Each
// slot is an atomic.Pointer so a writer publishing a freshly allocated
// child (or vertex record) does so with a release store, and a reader
// walking the trie without ever touching the slot's lock bit sees that
// publication with an acquire load — matching up with the lock bit,
// which only ever guards the allocate-and-publish critical section,
// not ordinary reads.
type node struct {
	children []atomic.Pointer[any]
	locks    *bitset.AtomicBitSet // one lock bit per slot, guarding lazy inflation
}

func newNode(size int) *node {
	return &node{
		children: make([]atomic.Pointer[any], size),
		locks:    bitset.NewAtomicBitSet(size),
	}
}

// load returns the slot's current occupant, or nil if never published.
func (n *node) load(idx int) any {
	p := n.children[idx].Load()
	if p == nil {
		return nil
	}
	return *p
}

// store publishes v into the slot with a release store.
func (n *node) store(idx int, v any) {
	n.children[idx].Store(&v)
}

// Trie is the fixed-depth radix index over sparse external IDs.
type Trie struct {
	depth        int
	bitsPerLevel []int
	prefixSum    []int // prefixSum[i] = sum(bitsPerLevel[0..i))
	totalBits    int

	root *node

	table *vertex.DenseTable
}

// New builds a trie of the given depth and per-level fan-out. depth
// must equal len(bitsPerLevel); every entry must be >= 1. table is the
// dense vertex table new vertex records are appended to as they are
// created.
func New(depth int, bitsPerLevel []int, table *vertex.DenseTable) (*Trie, error) {
	if depth != len(bitsPerLevel) {
		return nil, fmt.Errorf("trie: depth %d != len(bitsPerLevel) %d", depth, len(bitsPerLevel))
	}
	prefixSum := make([]int, depth+1)
	for i, b := range bitsPerLevel {
		if b < 1 {
			return nil, fmt.Errorf("trie: bitsPerLevel[%d] = %d, must be >= 1", i, b)
		}
		prefixSum[i+1] = prefixSum[i] + b
	}
	t := &Trie{
		depth:        depth,
		bitsPerLevel: bitsPerLevel,
		prefixSum:    prefixSum,
		totalBits:    prefixSum[depth],
		table:        table,
	}
	t.root = newNode(1 << bitsPerLevel[0])
	return t, nil
}

// slotAt returns the child-array index external id occupies at level i.
func (t *Trie) slotAt(id uint64, level int) int {
	shift := t.totalBits - t.prefixSum[level+1]
	width := t.bitsPerLevel[level]
	mask := uint64(1)<<uint(width) - 1
	return int((id >> uint(shift)) & mask)
}

// Retrieve walks the trie to the leaf for id. If the slot is empty (or,
// at the leaf, tombstoned) it returns (nil, false) unless insertMode is
// set, in which case it allocates along the way and returns the live
// record, or (nil, false) if the dense table's capacity is exhausted.
func (t *Trie) Retrieve(id uint64, insertMode bool) (*vertex.Record, bool) {
	current := t.root
	for level := 0; level < t.depth; level++ {
		idx := t.slotAt(id, level)

		if level < t.depth-1 {
			child := current.load(idx)
			if child == nil {
				if !insertMode {
					return nil, false
				}
				rec := t.insert(current, id, level)
				return rec, rec != nil
			}
			current = child.(*node)
			continue
		}

		// leaf level
		slot := current.load(idx)
		rec, _ := slot.(*vertex.Record)
		if rec == nil || !rec.IsLive() {
			if !insertMode {
				return nil, false
			}
			rec := t.insert(current, id, level)
			return rec, rec != nil
		}
		return rec, true
	}
	panic("trie: depth 0 trie is not constructible")
}

// insert performs lazy inflation from startLevel downward, acquiring
// each slot's lock bit only for the short double-checked-allocation
// critical section. Concurrent callers racing on the same slot
// serialize on that bit; callers on different slots never contend.
// Returns nil if the dense table refuses the append (capacity
// exhausted) — the slot is left empty for a future caller to retry.
func (t *Trie) insert(current *node, id uint64, startLevel int) *vertex.Record {
	for level := startLevel; level < t.depth-1; level++ {
		idx := t.slotAt(id, level)

		if current.load(idx) == nil {
			current.locks.TestAndAcquire(idx)
			if current.load(idx) == nil {
				size := 1 << t.bitsPerLevel[level+1]
				current.store(idx, newNode(size))
			}
			current.locks.Clear(idx)
		}
		current = current.load(idx).(*node)
	}

	idx := t.slotAt(id, t.depth-1)
	locks := current.locks
	locks.TestAndAcquire(idx)
	defer locks.Clear(idx)

	if rec, ok := current.load(idx).(*vertex.Record); ok && rec.IsLive() {
		return rec
	}

	// The dense table's own append position is the single source of
	// truth for the offset: appending is what serializes concurrent
	// inserts of *different* vertices into one monotonic sequence.
	rec := vertex.NewRecord(id, vertex.TombstoneOffset)
	offset, ok := t.table.Append(rec)
	if !ok {
		return nil
	}
	rec.SetInitialOffset(int32(offset))
	current.store(idx, rec)
	return rec
}

// Delete logically removes the vertex with the given external id.
// Its trie slot and dense-table storage are retained. Returns false if
// the vertex was already absent.
func (t *Trie) Delete(id uint64) bool {
	rec, ok := t.Retrieve(id, false)
	if !ok {
		return false
	}
	rec.Tombstone()
	return true
}

// Size returns the capacity census (sum of 1<<bitsPerLevel[d] over
// every allocated internal subtree), not the live vertex population.
func (t *Trie) Size() int64 {
	var sz int64
	type frame struct {
		n     *node
		level int
	}
	queue := []frame{{t.root, 0}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if f.level >= t.depth {
			continue
		}
		sz += int64(1) << uint(t.bitsPerLevel[f.level])
		if f.level < t.depth-1 {
			for i := range f.n.children {
				if c := f.n.load(i); c != nil {
					queue = append(queue, frame{c.(*node), f.level + 1})
				}
			}
		}
	}
	return sz
}
