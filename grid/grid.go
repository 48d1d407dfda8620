// Package grid supplies node adjacency to the flowgraph engine: per-node
// neighbour sets, separation distances, cell areas and boundary status.
// The engine makes no assumption on where the topology comes from; uniform
// rasters, grid-definition files and explicit (unstructured) neighbour
// lists are all served through the same Provider contract.
package grid

// Status flags how a node participates in flow routing.
type Status byte

const (
	Active        Status = iota // routed, must resolve a receiver
	FixedValue                  // base level, may receive but never requires a receiver
	FixedGradient               // base level
	Looped                      // routed, wrapped adjacency supplied by the provider
	Ghost                       // excluded from all routing computations
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case FixedValue:
		return "fixed_value"
	case FixedGradient:
		return "fixed_gradient"
	case Looped:
		return "looped"
	case Ghost:
		return "ghost"
	}
	return "unknown"
}

// BaseLevel reports whether flow may terminate at the node.
func (s Status) BaseLevel() bool { return s == FixedValue || s == FixedGradient }

// Routed reports whether the node must end up with a receiver.
func (s Status) Routed() bool { return s == Active || s == Looped }

// Provider is the adjacency contract consumed by the flowgraph engine.
// Topology is expected to be stable for the lifetime of an engine instance;
// a provider whose status set changes between calls forces a full route
// recompute on the next update.
type Provider interface {
	Ncells() int
	MaxNeighbors() int
	Neighbors(i int) []int     // geometric neighbours, callers filter by status
	Distances(i int) []float64 // parallel to Neighbors, elevation units
	CellArea(i int) float64
	Status(i int) Status
}
