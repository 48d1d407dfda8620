package flowgraph

import (
	"fmt"
	"sync"
)

// Accumulate propagates a per-node source field from upstream donors to
// downstream receivers: each node ends with its own contribution plus the
// weighted sum of everything its donors accumulated. Single O(N) pass over
// the upstream-first ordering; a node is visited only once all of its
// donors have contributed. Pure with respect to the current graph state.
func (fg *FlowGraph) Accumulate(src []float64) ([]float64, error) {
	if !fg.valid {
		return nil, fmt.Errorf("flowgraph: Accumulate: %w", ErrNotUpdated)
	}
	if len(src) != fg.g.Nc {
		return nil, fmt.Errorf("flowgraph: Accumulate given %d nodes, grid has %d: %w", len(src), fg.g.Nc, ErrShape)
	}
	return fg.g.accumulate(src), nil
}

// AccumulateUniform accumulates a uniform source broadcast to every node.
func (fg *FlowGraph) AccumulateUniform(v float64) ([]float64, error) {
	if !fg.valid {
		return nil, fmt.Errorf("flowgraph: AccumulateUniform: %w", ErrNotUpdated)
	}
	src := make([]float64, fg.g.Nc)
	for i := range src {
		src[i] = v
	}
	return fg.g.accumulate(src), nil
}

// DrainageArea accumulates cell areas, yielding the upstream contributing
// area at every node.
func (fg *FlowGraph) DrainageArea() ([]float64, error) {
	if !fg.valid {
		return nil, fmt.Errorf("flowgraph: DrainageArea: %w", ErrNotUpdated)
	}
	src := make([]float64, fg.g.Nc)
	for i := range src {
		src[i] = fg.p.CellArea(i)
	}
	return fg.g.accumulate(src), nil
}

func (g *Graph) accumulate(src []float64) []float64 {
	m := g.Mnbr
	acc := make([]float64, g.Nc)
	for _, i := range g.Ord { // every donor of i has already been visited
		acc[i] += src[i]
		if g.terminal(i) {
			continue
		}
		for k := 0; k < g.Nrec[i]; k++ {
			acc[g.Recv[i*m+k]] += acc[i] * g.Wrec[i*m+k]
		}
	}
	return acc
}

// AccumulateConcurrent is the wave-parallel form of Accumulate: nodes are
// visited level by level, every node of one level gathering from donors
// finalized in earlier levels. Results are identical to Accumulate.
func (fg *FlowGraph) AccumulateConcurrent(src []float64) ([]float64, error) {
	if !fg.valid {
		return nil, fmt.Errorf("flowgraph: AccumulateConcurrent: %w", ErrNotUpdated)
	}
	if len(src) != fg.g.Nc {
		return nil, fmt.Errorf("flowgraph: AccumulateConcurrent given %d nodes, grid has %d: %w", len(src), fg.g.Nc, ErrShape)
	}
	if fg.wav == nil {
		fg.wav = fg.g.waves()
	}

	g, m := fg.g, fg.g.Mnbr
	acc := make([]float64, g.Nc)
	var wg sync.WaitGroup
	for _, inner := range fg.wav {
		wg.Add(len(inner))
		for _, i := range inner {
			go func(i int) {
				defer wg.Done()
				a := src[i]
				for k := 0; k < g.Ndnr[i]; k++ {
					d := g.Dnr[i*m+k]
					for j := 0; j < g.Nrec[d]; j++ {
						if g.Recv[d*m+j] == i {
							a += acc[d] * g.Wrec[d*m+j]
							break
						}
					}
				}
				acc[i] = a
			}(i)
		}
		wg.Wait()
	}
	return acc, nil
}
