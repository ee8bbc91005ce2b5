// Package radixgraph implements a concurrent, in-memory, dynamic
// directed-weighted-graph store over a sparse, unbounded 64-bit
// vertex-identifier space.
//
// The store is built from two pieces: a radix-partitioned vertex
// index (internal/trie) that maps sparse external IDs to dense
// logical offsets, and a per-vertex append-only edge log
// (internal/vertex) that records inserts, updates, and deletions
// without ever mutating a prior entry. Reconstructing a vertex's
// current neighbor set — materialization — folds that log
// newest-to-oldest using a per-worker destination-seen bit set.
//
// Graph exposes edge-level CRUD (InsertEdge, UpdateEdge, DeleteEdge)
// and neighborhood queries (GetNeighbours, GetNeighboursByOffset), plus
// three analytical kernels: BFS, SSSP (sequential Dijkstra), and
// DeltaStep (parallel Δ-stepping). All mutation is append-only; there
// is no durable persistence, no secondary indexing, and no memory
// reclamation of tombstoned vertices or superseded log entries — see
// the package-level Non-goals in the repository's design notes.
package radixgraph
