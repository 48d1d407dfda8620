// Package flowgraph computes and follows surface-water flow routes over a
// topographic surface: downslope receiver topology, depression handling,
// drainage basins and upstream-to-downstream flux accumulation. One engine
// owns one routing graph store and runs one validated operator pipeline;
// adjacency comes from any grid.Provider.
package flowgraph

import (
	"fmt"

	"github.com/maseology/flowgraph/grid"
)

// FlowGraph orchestrates one operator pipeline over one elevation field
// and exposes the resulting routing graph to accumulation and basin
// queries. Engine instances share nothing.
type FlowGraph struct {
	p     grid.Provider
	g     *Graph
	ops   []Operator
	dir   FlowDir
	gsnap map[string]*Graph
	esnap map[string][]float64
	wav   [][]int // cached donor-complete levels for concurrent passes
	valid bool
}

// New validates the operator pipeline and allocates the routing graph
// store sized to the provider's node count.
func New(p grid.Provider, ops ...Operator) (*FlowGraph, error) {
	dir, err := validate(ops)
	if err != nil {
		return nil, err
	}
	return &FlowGraph{
		p: p, g: newGraph(p), ops: ops, dir: dir,
		gsnap: make(map[string]*Graph),
		esnap: make(map[string][]float64),
	}, nil
}

func (fg *FlowGraph) Size() int              { return fg.g.Nc }
func (fg *FlowGraph) Grid() grid.Provider    { return fg.p }
func (fg *FlowGraph) FlowDirection() FlowDir { return fg.dir }

// Impl returns the live routing graph store. Treat as read-only; it is
// rebuilt wholesale on every UpdateRoutes.
func (fg *FlowGraph) Impl() *Graph { return fg.g }

// UpdateRoutes recomputes the routing graph for the given elevation field,
// running the pipeline to completion, and returns the (possibly
// depression-corrected) working elevation. The caller's array is never
// mutated. Any failure leaves the store invalid until the next successful
// call.
func (fg *FlowGraph) UpdateRoutes(elev []float64) ([]float64, error) {
	if len(elev) != fg.g.Nc {
		return nil, fmt.Errorf("flowgraph: UpdateRoutes given %d nodes, grid has %d: %w", len(elev), fg.g.Nc, ErrShape)
	}
	fg.valid, fg.wav = false, nil

	z := make([]float64, len(elev))
	copy(z, elev)
	fg.g.reset()

	for _, op := range fg.ops {
		f := op.Flags()
		if err := op.Apply(fg.g, z); err != nil {
			return nil, fmt.Errorf("flowgraph: operator %s: %w", op.Name(), err)
		}
		if f.UpdatesGraph {
			if err := fg.g.orderNodes(); err != nil {
				return nil, fmt.Errorf("flowgraph: operator %s: %w", op.Name(), err)
			}
		}
		if f.SaveGraph != "" {
			fg.gsnap[f.SaveGraph] = fg.g.Copy()
		}
		if f.SaveElevation != "" {
			zc := make([]float64, len(z))
			copy(zc, z)
			fg.esnap[f.SaveElevation] = zc
		}
	}

	if err := fg.g.checkRouted(); err != nil {
		return nil, fmt.Errorf("flowgraph: %w", err)
	}
	fg.valid = true
	return z, nil
}

// GraphSnapshot retrieves a named point-in-time copy of the routing graph
// archived during the last pipeline run.
func (fg *FlowGraph) GraphSnapshot(name string) (*Graph, error) {
	if s, ok := fg.gsnap[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("flowgraph: graph snapshot %q: %w", name, ErrSnapshot)
}

// ElevationSnapshot retrieves a named point-in-time copy of the working
// elevation archived during the last pipeline run.
func (fg *FlowGraph) ElevationSnapshot(name string) ([]float64, error) {
	if s, ok := fg.esnap[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("flowgraph: elevation snapshot %q: %w", name, ErrSnapshot)
}
