package belief

import (
	"context"
	"runtime"
)

// Default tunables (spec §5 "Concurrency & Resource Model").
const (
	// DefaultMaxConditioningNodes bounds |A_i| before the 2^n enumeration
	// of conditioning states becomes impractical.
	DefaultMaxConditioningNodes = 20

	// DefaultMaxRecursionDepth bounds how many levels of nested diamonds the
	// conditioning sub-pass will recurse through before failing closed.
	DefaultMaxRecursionDepth = 8

	// DefaultTolerance is the slack allowed around an algebra's valid domain
	// before a combined scalar is reported as INVARIANT_VIOLATION.
	DefaultTolerance = 1e-6
)

// Config tunes one propagation run. Build it with NewConfig and the WithX
// options below; the zero value is not meant to be used directly.
type Config struct {
	maxConditioningNodes int
	maxRecursionDepth    int
	tolerance            float64
	parallel             bool
	maxWorkers           int
	ctx                  context.Context
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig resolves options against the documented defaults.
func NewConfig(opts ...Option) Config {
	c := Config{
		maxConditioningNodes: DefaultMaxConditioningNodes,
		maxRecursionDepth:    DefaultMaxRecursionDepth,
		tolerance:            DefaultTolerance,
		parallel:             true,
		maxWorkers:           runtime.NumCPU(),
		ctx:                  context.Background(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithMaxConditioningNodes caps the size of any single diamond group's
// conditioning set. Groups larger than this yield
// analysiserr.ConditioningTooLarge instead of enumerating 2^n states.
func WithMaxConditioningNodes(n int) Option {
	return func(c *Config) { c.maxConditioningNodes = n }
}

// WithMaxRecursionDepth caps how deep nested-diamond conditioning may
// recurse (spec §9).
func WithMaxRecursionDepth(d int) Option {
	return func(c *Config) { c.maxRecursionDepth = d }
}

// WithTolerance sets the slack around an algebra's domain before a
// combined scalar is reported as an invariant violation.
func WithTolerance(tol float64) Option {
	return func(c *Config) { c.tolerance = tol }
}

// WithParallel enables or disables fan-out across nodes within a layer
// (spec §5). Disabled, every layer is processed sequentially in node
// order, useful for deterministic debugging.
func WithParallel(enabled bool) Option {
	return func(c *Config) { c.parallel = enabled }
}

// WithMaxWorkers caps the number of concurrent goroutines used to process
// one iteration set. Ignored when WithParallel(false).
func WithMaxWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithContext supplies the cancellation context checked at each layer
// boundary and inside every worker's per-node loop.
func WithContext(ctx context.Context) Option {
	return func(c *Config) { c.ctx = ctx }
}
