package flowgraph

import "errors"

var (
	// ErrShape reports a field whose length does not match the grid node count.
	ErrShape = errors.New("field shape does not match grid node count")
	// ErrCycle reports a routing graph left with a cycle after an operator ran.
	ErrCycle = errors.New("routing graph contains a cycle")
	// ErrNoReceiver reports a routed node left without a downslope receiver.
	ErrNoReceiver = errors.New("routed node has no receiver")
	// ErrNotUpdated reports a query made before a successful UpdateRoutes.
	ErrNotUpdated = errors.New("routes not updated")
	// ErrSnapshot reports a request for a snapshot name never populated.
	ErrSnapshot = errors.New("snapshot not found")
)
