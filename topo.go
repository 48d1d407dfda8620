package flowgraph

import (
	"container/heap"
	"fmt"

	"github.com/maseology/flowgraph/grid"
	"github.com/maseology/mmaths/slice"
)

// buildDonors recomputes the donor arrays as the transpose of the
// receiver relation. Self-receivers (pit markers) carry no edge.
func (g *Graph) buildDonors() {
	for i := range g.Ndnr {
		g.Ndnr[i] = 0
	}
	for i := range g.Dnr {
		g.Dnr[i] = norecv
	}
	m := g.Mnbr
	for i := 0; i < g.Nc; i++ {
		for k := 0; k < g.Nrec[i]; k++ {
			r := g.Recv[i*m+k]
			if r == i {
				continue
			}
			g.Dnr[r*m+g.Ndnr[r]] = i
			g.Ndnr[r]++
		}
	}
}

type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	o := *h
	n := len(o) - 1
	x := o[n]
	*h = o[:n]
	return x
}

// orderNodes rebuilds donors and the upstream-first topological ordering
// over all non-ghost nodes. Among ready nodes the lowest index is always
// emitted first, so the ordering is deterministic for a given graph.
func (g *Graph) orderNodes() error {
	g.buildDonors()
	m := g.Mnbr
	indeg := make([]int, g.Nc)
	h := &intHeap{}
	n := 0
	for i := 0; i < g.Nc; i++ {
		if g.p.Status(i) == grid.Ghost {
			indeg[i] = -1
			continue
		}
		indeg[i] = g.Ndnr[i]
		n++
		if indeg[i] == 0 {
			*h = append(*h, i)
		}
	}
	heap.Init(h)

	ord := make([]int, 0, n)
	for h.Len() > 0 {
		i := heap.Pop(h).(int)
		ord = append(ord, i)
		for k := 0; k < g.Nrec[i]; k++ {
			r := g.Recv[i*m+k]
			if r == i {
				continue
			}
			indeg[r]--
			if indeg[r] == 0 {
				heap.Push(h, r)
			}
		}
	}
	if len(ord) != n {
		return fmt.Errorf("topological ordering reached %d of %d nodes: %w", len(ord), n, ErrCycle)
	}
	g.Ord = ord
	return nil
}

// waves groups the topological ordering into donor-complete levels: every
// donor of a node sits in a strictly earlier level, so nodes within one
// level may be visited concurrently.
func (g *Graph) waves() [][]int {
	cnt := make(map[int]int, len(g.Ord))
	for _, i := range g.Ord {
		if _, ok := cnt[i]; !ok {
			cnt[i] = 0
		}
		for k := 0; k < g.Nrec[i]; k++ {
			r := g.Recv[i*g.Mnbr+k]
			if r == i {
				continue
			}
			if cnt[i]+1 > cnt[r] {
				cnt[r] = cnt[i] + 1
			}
		}
	}

	mord, lord := slice.InvertMap(cnt)
	ord := make([][]int, len(lord))
	for i, k := range lord {
		cpy := make([]int, len(mord[k]))
		copy(cpy, mord[k])
		ord[i] = cpy
	}
	return ord
}

// checkRouted verifies every routed node drains somewhere after the
// pipeline has completed.
func (g *Graph) checkRouted() error {
	for i := 0; i < g.Nc; i++ {
		if g.p.Status(i).Routed() && g.terminal(i) {
			return fmt.Errorf("node %d (%s): %w", i, g.p.Status(i), ErrNoReceiver)
		}
	}
	return nil
}
