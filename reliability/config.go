package reliability

import (
	"context"
	"runtime"
)

// Default tunables, mirroring package belief's (spec §5).
const (
	DefaultMaxConditioningNodes = 20
	DefaultMaxRecursionDepth    = 8
	DefaultTolerance            = 1e-6
)

// Config tunes one reliability run. Build it with NewConfig and the
// WithX options below.
type Config struct {
	timeHorizon int
	dt          float64

	maxConditioningNodes int
	maxRecursionDepth    int
	tolerance            float64
	parallel             bool
	maxWorkers           int
	ctx                  context.Context
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig resolves options against documented defaults. TimeHorizon
// and Dt must be supplied via WithTimeHorizon/WithTimestep; Run rejects a
// Config where either is left at its zero value.
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

// WithTimeHorizon sets T, the number of discrete timesteps to evolve
// (trajectories run from t=0, the initial state, through t=T inclusive).
func WithTimeHorizon(t int) Option { return func(c *Config) { c.timeHorizon = t } }

// WithTimestep sets dt. Run validates dt·max(λ,μ) < 1 at every node
// before evolving any state (spec §4.6 "Hard requirement").
func WithTimestep(dt float64) Option { return func(c *Config) { c.dt = dt } }

// WithMaxConditioningNodes caps a cascade diamond group's conditioning
// set size, as in package belief.
func WithMaxConditioningNodes(n int) Option {
	return func(c *Config) { c.maxConditioningNodes = n }
}

// WithMaxRecursionDepth caps nested cascade-diamond recursion depth.
func WithMaxRecursionDepth(d int) Option {
	return func(c *Config) { c.maxRecursionDepth = d }
}

// WithTolerance sets the slack allowed in the w+f+r=1 conservation check.
func WithTolerance(tol float64) Option { return func(c *Config) { c.tolerance = tol } }

// WithParallel enables or disables fan-out within an iteration set.
func WithParallel(enabled bool) Option { return func(c *Config) { c.parallel = enabled } }

// WithMaxWorkers caps concurrent goroutines per iteration set.
func WithMaxWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithContext supplies the cancellation context checked at layer and
// timestep boundaries.
func WithContext(ctx context.Context) Option { return func(c *Config) { c.ctx = ctx } }
