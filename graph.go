package radixgraph

import (
	"log"

	"github.com/forwardstar/radixgraph/internal/bitset"
	"github.com/forwardstar/radixgraph/internal/container"
	"github.com/forwardstar/radixgraph/internal/trie"
	"github.com/forwardstar/radixgraph/internal/vertex"
)

// Neighbor is one live out-edge, as returned by GetNeighbours.
type Neighbor struct {
	// DestOffset is the dense offset of the destination vertex.
	DestOffset int32
	Weight     float32
}

// Graph binds the radix-trie vertex index, the dense vertex table,
// and the per-vertex edge log into the public CRUD and neighborhood
// query surface described in the package doc.
type Graph struct {
	trie  *trie.Trie
	table *vertex.DenseTable

	enableQuery bool
	degrees     *container.AtomicCounterVec // external mirror of each vertex's deg, query-mode only
	seenPool    *bitset.Pool                // one destination-seen bit set per worker index

	maxThreads int
	logger     *log.Logger
}

// New constructs a Graph whose vertex index has the given depth and
// per-level fan-out. depth must equal len(bitsPerLevel); every entry
// must be >= 1; together they must cover the effective width of the
// external-ID space the caller intends to use (the trie does not
// validate this — an under-wide configuration just aliases distinct
// IDs into the same leaf, which is a caller error, not ErrOutOfResource).
//
// enableQuery turns on the per-offset degree mirror and per-worker
// scan-bitset pool that GetNeighbours needs; disabling it supports
// write-only workloads without paying for either.
func New(depth int, bitsPerLevel []int, enableQuery bool, opts ...Option) (*Graph, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	table := vertex.NewDenseTableWithCapacity(cfg.capacityHint)
	tr, err := trie.New(depth, bitsPerLevel, table)
	if err != nil {
		return nil, ErrInvalidConfiguration
	}

	g := &Graph{
		trie:        tr,
		table:       table,
		enableQuery: enableQuery,
		maxThreads:  cfg.maxThreads,
		logger:      cfg.logger,
	}
	if enableQuery {
		g.degrees = container.NewAtomicCounterVec()
		g.seenPool = bitset.NewPool(cfg.capacityHint)
	}
	return g, nil
}

// InsertEdge adds or updates a directed edge (src, dest) with the
// given weight, creating either endpoint if it does not already
// exist. Re-inserting an existing edge is not an error: the log simply
// gains another entry, and materialization still yields one live edge
// with the latest weight. Returns false only if the dense table's
// capacity hint (see WithCapacityHint) is exhausted and a new endpoint
// could not be created; the core stays silent, but logs the refusal
// through WithLogger's logger if one is configured.
func (g *Graph) InsertEdge(src, dest uint64, weight float32) bool {
	srcRec, ok := g.trie.Retrieve(src, true)
	if !ok {
		g.logCapacityExhausted()
		return false
	}
	destRec, ok := g.trie.Retrieve(dest, true)
	if !ok {
		g.logCapacityExhausted()
		return false
	}

	srcRec.AppendInsertOrUpdate(destRec.Offset(), weight, true)
	if g.enableQuery {
		g.degrees.Add(int(srcRec.Offset()), 1)
	}
	return true
}

func (g *Graph) logCapacityExhausted() {
	if g.logger != nil {
		g.logger.Printf("%v", ErrOutOfResource)
	}
}

// UpdateEdge sets the weight of an existing edge without creating
// either endpoint. Returns false if src or dest is absent. deg is left
// unchanged: insert and update append identical log entries and differ
// only in degree bookkeeping.
func (g *Graph) UpdateEdge(src, dest uint64, weight float32) bool {
	srcRec, ok := g.trie.Retrieve(src, false)
	if !ok {
		return false
	}
	destRec, ok := g.trie.Retrieve(dest, false)
	if !ok {
		return false
	}
	srcRec.AppendInsertOrUpdate(destRec.Offset(), weight, false)
	return true
}

// DeleteEdge appends a deletion entry for (src, dest). Returns false if
// either endpoint is absent. Deleting an edge that was never inserted
// is not an error: the deletion entry is benign under materialization.
func (g *Graph) DeleteEdge(src, dest uint64) bool {
	srcRec, ok := g.trie.Retrieve(src, false)
	if !ok {
		return false
	}
	destRec, ok := g.trie.Retrieve(dest, false)
	if !ok {
		return false
	}
	srcRec.AppendDelete(destRec.Offset())
	if g.enableQuery {
		g.degrees.Add(int(srcRec.Offset()), -1)
	}
	return true
}

// callerWorkerIndex is the stable per-call worker identity materialization
// uses to pick a scan bit set. GetNeighbours and GetNeighboursByOffset
// are ordinary synchronous calls with no pool of their own, so every
// caller is worker 0; DeltaStep's relax phase supplies its own worker
// indices when it materializes neighborhoods from multiple goroutines.
const callerWorkerIndex = 0

// GetNeighbours writes src's current live neighbor set into a freshly
// allocated slice and returns it. timestamp selects the log prefix to
// replay (see Materialize); -1 means "latest". Returns false only when
// src does not exist or the Graph was built with enableQuery=false; an
// empty result is still success.
func (g *Graph) GetNeighbours(src uint64, timestamp int) ([]Neighbor, bool) {
	rec, ok := g.trie.Retrieve(src, false)
	if !ok {
		return nil, false
	}
	return g.materialize(rec, timestamp, callerWorkerIndex)
}

// GetNeighboursByOffset is GetNeighbours via a direct dense-table
// lookup, for callers that already hold a dense offset (the
// analytical kernels).
func (g *Graph) GetNeighboursByOffset(srcOffset int32, timestamp int) ([]Neighbor, bool) {
	if int(srcOffset) >= g.table.Len() || srcOffset < 0 {
		return nil, false
	}
	rec := g.table.At(srcOffset)
	return g.materialize(rec, timestamp, callerWorkerIndex)
}

func (g *Graph) materialize(rec *vertex.Record, timestamp, workerIdx int) ([]Neighbor, bool) {
	if !g.enableQuery {
		return nil, false
	}
	seen := g.seenPool.Get(workerIdx)
	ns, ok := vertex.Materialize(rec, g.table, seen, timestamp)
	if !ok {
		return nil, false
	}
	out := make([]Neighbor, len(ns))
	for i, n := range ns {
		out[i] = Neighbor{DestOffset: n.DestOffset, Weight: n.Weight}
	}
	return out, true
}

// neighboursForWorker is GetNeighboursByOffset with an explicit worker
// index, for callers — the analytical kernels — that materialize
// neighborhoods concurrently from a fixed pool of goroutines and must
// not share one SeenSet across them.
func (g *Graph) neighboursForWorker(srcOffset int32, workerIdx int) ([]Neighbor, bool) {
	if int(srcOffset) >= g.table.Len() || srcOffset < 0 {
		return nil, false
	}
	rec := g.table.At(srcOffset)
	return g.materialize(rec, -1, workerIdx)
}

// Degree returns the current logical out-degree (inserts minus
// deletes) of the vertex at srcOffset, read from the external
// per-offset degree mirror rather than its Record — the same
// dense-offset-indexed locality analytical kernels get from
// GetNeighboursByOffset, without dereferencing a *Record. Returns
// false if query mode is disabled or srcOffset is out of range.
func (g *Graph) Degree(srcOffset int32) (int32, bool) {
	if !g.enableQuery || int(srcOffset) >= g.table.Len() || srcOffset < 0 {
		return 0, false
	}
	return g.degrees.Load(int(srcOffset)), true
}

// OffsetOf returns the dense offset assigned to an existing external
// ID, and false if it is absent.
func (g *Graph) OffsetOf(id uint64) (int32, bool) {
	rec, ok := g.trie.Retrieve(id, false)
	if !ok {
		return 0, false
	}
	return rec.Offset(), true
}

// NumVertices returns the number of vertices ever created (live or
// tombstoned) — the dense table's length.
func (g *Graph) NumVertices() int { return g.table.Len() }
