package topology

import "github.com/reliagraph/reliagraph/core"

// ErrCycle indicates Kahn's algorithm terminated with unprocessed nodes,
// i.e. the input graph is not acyclic (spec §4.2). It is the same sentinel
// as core.ErrCycle.
var ErrCycle = core.ErrCycle
