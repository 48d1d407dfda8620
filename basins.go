package flowgraph

import (
	"fmt"

	"github.com/maseology/mmaths"
)

// Basins labels every routed node with the id of the terminal outlet its
// flow reaches, walking the ordering downstream-first so a node inherits
// the label of its dominant receiver. Labels form a partition of all
// non-ghost nodes; internally-draining regions rooted at an interior
// outlet get their own label.
func (fg *FlowGraph) Basins() ([]int, error) {
	if !fg.valid {
		return nil, fmt.Errorf("flowgraph: Basins: %w", ErrNotUpdated)
	}
	fg.g.computeBasins()
	out := make([]int, fg.g.Nc)
	copy(out, fg.g.Basin)
	return out, nil
}

func (g *Graph) computeBasins() {
	for i := range g.Basin {
		g.Basin[i] = -1
	}
	nb := 0
	for k := len(g.Ord) - 1; k >= 0; k-- { // downstream first
		i := g.Ord[k]
		if g.terminal(i) {
			g.Basin[i] = nb
			nb++
		} else {
			g.Basin[i] = g.Basin[g.dominant(i)]
		}
	}
}

// BasinSizes returns basin labels and their node counts, smallest basin
// first.
func (fg *FlowGraph) BasinSizes() ([]int, []int, error) {
	b, err := fg.Basins()
	if err != nil {
		return nil, nil, err
	}
	m := make(map[int]int)
	for _, v := range b {
		if v >= 0 {
			m[v]++
		}
	}
	k, v := mmaths.SortMapInt(m, false)
	return k, v, nil
}

// Outlets returns the terminal nodes of the current routing graph in
// basin-label order.
func (fg *FlowGraph) Outlets() ([]int, error) {
	if !fg.valid {
		return nil, fmt.Errorf("flowgraph: Outlets: %w", ErrNotUpdated)
	}
	var out []int
	for k := len(fg.g.Ord) - 1; k >= 0; k-- {
		if i := fg.g.Ord[k]; fg.g.terminal(i) {
			out = append(out, i)
		}
	}
	return out, nil
}
