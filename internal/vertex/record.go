// Package vertex holds the per-vertex state and the append-only edge
// log it owns, plus the dense, offset-addressed table of all vertices
// the store has ever created.
package vertex

import (
	"sync/atomic"

	"github.com/forwardstar/radixgraph/internal/container"
)

// TombstoneOffset marks a vertex as logically deleted: absent from
// the live graph but still addressable by every offset that pointed
// at it (the dense table and edge-log destinations never recycle an
// offset, see DenseTable).
const TombstoneOffset int32 = -1

// EdgeLogEntry is one append to a source vertex's log. A zero weight
// records a deletion of the edge to DestOffset; a non-zero weight
// records an insertion or an update setting the edge's current weight.
type EdgeLogEntry struct {
	Weight     float32
	DestOffset int32
}

// IsDeletion reports whether this entry records a deletion.
func (e EdgeLogEntry) IsDeletion() bool { return e.Weight == 0 }

// Record is the fixed-layout per-vertex state: external ID, dense
// offset, tombstone marker (folded into Offset), a reserved
// generation counter, the logical out-degree, and the append-only
// edge log. Once published into the trie and the dense table, a
// Record's address never changes for the lifetime of the store.
type Record struct {
	ExternalID uint64
	offset     atomic.Int32 // immutable once set from -1 to a real offset; set to -1 again on delete

	// DelTime is reserved for future version tracking. It is
	// initialized to zero and never read by any store operation.
	DelTime int32

	deg atomic.Int32
	Log *container.SegVec[EdgeLogEntry]
}

// NewRecord constructs a vertex record with the given external ID and
// dense offset, ready to accept edge-log appends.
func NewRecord(externalID uint64, offset int32) *Record {
	r := &Record{
		ExternalID: externalID,
		Log:        container.NewSegVec[EdgeLogEntry](),
	}
	r.offset.Store(offset)
	return r
}

// SetInitialOffset assigns rec's permanent dense offset. It exists
// only for the narrow window between appending a freshly created
// record to the dense table (which decides the offset) and publishing
// it into its trie slot; it must be called at most once, before the
// record is visible to any other goroutine.
func (r *Record) SetInitialOffset(offset int32) { r.offset.Store(offset) }

// Offset returns the vertex's dense offset, or TombstoneOffset if the
// vertex has been logically deleted.
func (r *Record) Offset() int32 { return r.offset.Load() }

// Tombstone marks the vertex absent. Storage (including the edge log)
// is retained so offsets referencing it stay addressable.
func (r *Record) Tombstone() { r.offset.Store(TombstoneOffset) }

// IsLive reports whether the vertex has not been logically deleted.
func (r *Record) IsLive() bool { return r.offset.Load() != TombstoneOffset }

// Degree returns the current logical out-degree: inserts minus deletes.
func (r *Record) Degree() int32 { return r.deg.Load() }

// AppendInsertOrUpdate appends an insert/update entry and, if isInsert,
// bumps the logical degree. insert_edge and update_edge produce
// identical log entries; only the degree bookkeeping differs between
// them (the asymmetry is intentional, not an oversight).
func (r *Record) AppendInsertOrUpdate(destOffset int32, weight float32, isInsert bool) {
	r.Log.Append(EdgeLogEntry{Weight: weight, DestOffset: destOffset})
	if isInsert {
		r.deg.Add(1)
	}
}

// AppendDelete appends a zero-weight entry and decrements the degree.
// Deleting an edge that was never live is indistinguishable from a
// real deletion at write time and is silently idempotent under
// materialization: a lone deletion entry never emits a neighbor.
func (r *Record) AppendDelete(destOffset int32) {
	r.Log.Append(EdgeLogEntry{Weight: 0, DestOffset: destOffset})
	r.deg.Add(-1)
}
