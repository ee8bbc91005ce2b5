package container

import (
	"sync"
	"sync/atomic"
)

type counterSegment [segmentSize]atomic.Int32

// AtomicCounterVec is a growable, offset-indexed vector of atomic
// int32 counters with stable addresses, used by the graph façade to
// keep an external per-offset degree mirror in lockstep with each
// vertex record's own degree counter (see Graph's query-mode toggle).
// It differs from SegVec in that it is grown by *index*, not by
// sequential append — offsets are assigned by the trie, not by this
// vector — and its elements are never copied, only indexed.
type AtomicCounterVec struct {
	mu       sync.Mutex
	segments atomic.Pointer[[]*counterSegment]
}

// NewAtomicCounterVec returns an empty counter vector.
func NewAtomicCounterVec() *AtomicCounterVec {
	v := &AtomicCounterVec{}
	empty := make([]*counterSegment, 0)
	v.segments.Store(&empty)
	return v
}

// ensure grows the vector so index i is addressable.
func (v *AtomicCounterVec) ensure(i int) []*counterSegment {
	segs := *v.segments.Load()
	segIdx := i / segmentSize
	if segIdx < len(segs) {
		return segs
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	segs = *v.segments.Load()
	if segIdx < len(segs) {
		return segs
	}
	grown := make([]*counterSegment, segIdx+1)
	copy(grown, segs)
	for i := len(segs); i <= segIdx; i++ {
		grown[i] = &counterSegment{}
	}
	v.segments.Store(&grown)
	return grown
}

func (v *AtomicCounterVec) at(i int) *atomic.Int32 {
	segs := v.ensure(i)
	seg := segs[i/segmentSize]
	return &seg[i%segmentSize]
}

// Add adds delta to the counter at index i, growing the vector first
// if necessary, and returns the new value.
func (v *AtomicCounterVec) Add(i int, delta int32) int32 {
	return v.at(i).Add(delta)
}

// Load returns the counter at index i, or 0 if i has never been
// touched (including when it is beyond the vector's current extent).
func (v *AtomicCounterVec) Load(i int) int32 {
	segs := *v.segments.Load()
	segIdx := i / segmentSize
	if segIdx >= len(segs) {
		return 0
	}
	return segs[segIdx][i%segmentSize].Load()
}
