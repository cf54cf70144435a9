package graph

import "errors"

// ErrCycle is returned by TopologicalSort when the graph contains a cycle.
var ErrCycle = errors.New("graph: cycle detected")
