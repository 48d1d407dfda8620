package flowgraph

import (
	"container/heap"
	"fmt"
)

// FillSinkResolver raises the working elevation of every closed depression
// to its spill level plus a small increment Eps, so a router placed after
// it always finds a strictly sloping path to base level. Priority-flood:
// the flood front grows outward from the base-level nodes, lowest front
// node first, without recursion. Touches elevation only, never the graph.
type FillSinkResolver struct{ Eps float64 }

func (FillSinkResolver) Name() string { return "fill_sink_resolver" }

func (FillSinkResolver) Flags() OpFlags { return OpFlags{UpdatesElevation: true} }

func (sr FillSinkResolver) Apply(g *Graph, z []float64) error {
	eps := sr.Eps
	if eps <= 0. {
		eps = 1e-6
	}
	p := g.Grid()

	closed := make([]bool, g.Nc)
	pq := &zheap{}
	for i := 0; i < g.Nc; i++ {
		switch {
		case p.Status(i).BaseLevel():
			*pq = append(*pq, znode{i, z[i]})
			closed[i] = true
		case !p.Status(i).Routed(): // ghost
			closed[i] = true
		}
	}
	if pq.Len() == 0 {
		return fmt.Errorf("no base-level node to drain to")
	}
	heap.Init(pq)

	for pq.Len() > 0 {
		c := heap.Pop(pq).(znode)
		for _, j := range p.Neighbors(c.i) {
			if closed[j] {
				continue
			}
			closed[j] = true
			if z[j] <= c.z {
				z[j] = c.z + eps
			}
			heap.Push(pq, znode{j, z[j]})
		}
	}
	return nil
}

type znode struct {
	i int
	z float64
}

type zheap []znode

func (h zheap) Len() int { return len(h) }
func (h zheap) Less(i, j int) bool {
	if h[i].z == h[j].z {
		return h[i].i < h[j].i
	}
	return h[i].z < h[j].z
}
func (h zheap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *zheap) Push(x interface{}) { *h = append(*h, x.(znode)) }
func (h *zheap) Pop() interface{} {
	o := *h
	n := len(o) - 1
	x := o[n]
	*h = o[:n]
	return x
}
