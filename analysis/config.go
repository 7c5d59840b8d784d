package analysis

import (
	"context"
	"runtime"

	"github.com/reliagraph/reliagraph/probalg"
)

// Default tunables (spec §5, §6).
const (
	DefaultMaxConditioningNodes = 20
	DefaultMaxRecursionDepth    = 8
	DefaultTolerance            = 1e-6
)

// Config is the configuration object spec §6 enumerates: `{algebra,
// max_conditioning_nodes, numerical_tolerance, parallel, memory_limit_bytes,
// cancellation_token}`. Build it with NewConfig and the WithX options below,
// mirroring flow.FlowOptions's grouped-fields style but assembled
// functional-options-style like dfs.Option/bfs.Option.
type Config struct {
	algebra              probalg.Algebra
	maxConditioningNodes int
	maxRecursionDepth    int
	tolerance            float64
	parallel             bool
	maxWorkers           int
	memoryLimitBytes     int64
	ctx                  context.Context
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig resolves options against the documented defaults: float
// algebra, unbounded memory (0 disables the check), and parallelism on
// across all CPUs.
func NewConfig(opts ...Option) Config {
	c := Config{
		algebra:              probalg.Float,
		maxConditioningNodes: DefaultMaxConditioningNodes,
		maxRecursionDepth:    DefaultMaxRecursionDepth,
		tolerance:            DefaultTolerance,
		parallel:             true,
		maxWorkers:           runtime.NumCPU(),
		memoryLimitBytes:     0,
		ctx:                  context.Background(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithAlgebra selects the probability scalar implementation (spec §3 C3:
// float, interval, or p-box).
func WithAlgebra(alg probalg.Algebra) Option {
	return func(c *Config) { c.algebra = alg }
}

// WithMaxConditioningNodes caps the size of any single diamond group's
// conditioning set before InclusionExclusion's 2^n enumeration runs.
func WithMaxConditioningNodes(n int) Option {
	return func(c *Config) { c.maxConditioningNodes = n }
}

// WithMaxRecursionDepth caps nested-diamond conditioning recursion depth.
func WithMaxRecursionDepth(d int) Option {
	return func(c *Config) { c.maxRecursionDepth = d }
}

// WithTolerance sets the numerical slack allowed around an algebra's valid
// domain and around the reliability w+f+r=1 conservation check.
func WithTolerance(tol float64) Option {
	return func(c *Config) { c.tolerance = tol }
}

// WithParallelism enables or disables fan-out across nodes within an
// iteration set / timestep layer, and optionally caps the worker count
// (0 leaves the current worker cap unchanged).
func WithParallelism(enabled bool, maxWorkers int) Option {
	return func(c *Config) {
		c.parallel = enabled
		if maxWorkers > 0 {
			c.maxWorkers = maxWorkers
		}
	}
}

// WithMemoryLimit sets the byte budget memory.Estimate is checked against
// before any allocation (0 disables the check).
func WithMemoryLimit(bytes int64) Option {
	return func(c *Config) { c.memoryLimitBytes = bytes }
}

// WithCancel supplies the cancellation token (spec §6 `cancellation_token`)
// checked at every layer/timestep boundary.
func WithCancel(ctx context.Context) Option {
	return func(c *Config) { c.ctx = ctx }
}
