package radixgraph

import "log"

// DefaultCapacity is the pre-reserved dense-table / per-worker bit-set
// capacity used unless overridden with WithCapacityHint. Production
// use targets CAP_DUMMY_NODES == 50_000_000 from the original design;
// tests override it with WithCapacityHint since allocating a 50M-bit
// scan set per worker is wasteful for small graphs.
const DefaultCapacity = 50_000_000

// DefaultMaxThreads is the worker-pool size Δ-stepping uses unless
// overridden with WithMaxThreads.
const DefaultMaxThreads = 64

// Option configures ambient concerns of a Graph — worker-pool sizing,
// capacity pre-reservation, and logging — never its CRUD/traversal
// semantics. Mirrors the functional-option style used throughout the
// reference corpus for optional construction-time configuration.
type Option func(*config)

type config struct {
	maxThreads   int
	capacityHint int
	logger       *log.Logger
}

func defaultConfig() config {
	return config{
		maxThreads:   DefaultMaxThreads,
		capacityHint: DefaultCapacity,
		logger:       nil,
	}
}

// WithMaxThreads overrides the fixed worker-pool cardinality used by
// DeltaStep.
func WithMaxThreads(n int) Option {
	return func(c *config) { c.maxThreads = n }
}

// WithCapacityHint overrides the pre-reserved dense-table / scan-bitset
// capacity. Exceeding it makes InsertEdge return false (and log
// ErrOutOfResource when a logger is configured) rather than a silent
// reallocation (see the repository's design notes on why).
func WithCapacityHint(n int) Option {
	return func(c *config) { c.capacityHint = n }
}

// WithLogger attaches a logger the store uses for capacity
// diagnostics: InsertEdge logs ErrOutOfResource through it each time
// the dense table refuses a new endpoint. Nothing else in the store
// logs, and nothing logs when no logger is configured.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}
