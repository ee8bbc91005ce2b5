package radixgraph

import "errors"

// Sentinel errors returned by construction and the analytical kernels.
// Per-edge CRUD operations (InsertEdge, UpdateEdge, DeleteEdge,
// GetNeighbours) signal NotFound with a plain bool return instead, per
// the store's propagation policy: callers treat false as a no-op, not
// an exceptional condition, and the core never logs or retries on
// their behalf.
var (
	// ErrInvalidConfiguration is returned by New when its preconditions
	// are violated (depth/bitsPerLevel mismatch, a zero-width level).
	ErrInvalidConfiguration = errors.New("radixgraph: invalid configuration")

	// ErrOutOfResource reports that the dense vertex table's capacity
	// hint is exhausted. No operation returns it: InsertEdge reports
	// the refusal with a false return and logs this error through the
	// logger configured with WithLogger, if any. It is fatal to the
	// operation that triggered it, never to the process.
	ErrOutOfResource = errors.New("radixgraph: capacity exceeded")

	// ErrSourceNotFound is returned by the analytical kernels when the
	// requested source vertex does not exist in the store.
	ErrSourceNotFound = errors.New("radixgraph: source vertex not found")

	// ErrQueryDisabled is returned by the analytical kernels when the
	// Graph was constructed with enableQuery=false. GetNeighbours and
	// GetNeighboursByOffset report the same condition with a false
	// return.
	ErrQueryDisabled = errors.New("radixgraph: query mode is disabled")
)
