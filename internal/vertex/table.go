package vertex

import (
	"sync/atomic"

	"github.com/forwardstar/radixgraph/internal/container"
)

// DenseTable is the append-only sequence of vertex records indexed by
// the dense offset assigned at insertion: At(k) is the record that was
// assigned offset k (a tombstoned record stays at k, though its
// Offset() then reports TombstoneOffset). It never relocates existing
// elements,
// so analytical kernels can cache a *Record across calls.
//
// capacity bounds the pre-reserved dense-table slot count; 0 means
// unbounded. Exceeding it is a resource error the caller surfaces as
// ErrOutOfResource, never a silent reallocation past the caller's
// declared capacity hint.
type DenseTable struct {
	vec      *container.SegVec[*Record]
	capacity int64
	reserved atomic.Int64
}

// NewDenseTable returns an empty dense vertex table with no capacity
// bound.
func NewDenseTable() *DenseTable {
	return &DenseTable{vec: container.NewSegVec[*Record]()}
}

// NewDenseTableWithCapacity returns an empty dense vertex table that
// refuses appends once capacity slots have been reserved. capacity <= 0
// means unbounded.
func NewDenseTableWithCapacity(capacity int) *DenseTable {
	return &DenseTable{vec: container.NewSegVec[*Record](), capacity: int64(capacity)}
}

// Len returns the number of vertices ever created (live or tombstoned).
func (t *DenseTable) Len() int { return t.vec.Len() }

// Append adds rec to the table and returns the offset it was assigned
// and true, or (0, false) if doing so would exceed the table's
// capacity. This is the single point that hands out dense offsets: the
// caller (the trie, while still holding the destination slot's lock
// bit) must call rec.SetInitialOffset with the returned value before
// publishing rec anywhere else.
func (t *DenseTable) Append(rec *Record) (int, bool) {
	if t.capacity > 0 {
		if t.reserved.Add(1) > t.capacity {
			t.reserved.Add(-1)
			return 0, false
		}
	}
	idx, _ := t.vec.Append(rec)
	return idx, true
}

// At returns the record at offset k. k must be < Len().
func (t *DenseTable) At(k int32) *Record {
	return *t.vec.At(int(k))
}
