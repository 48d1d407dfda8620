package flowgraph

import (
	"math"

	"github.com/maseology/flowgraph/grid"
)

// MultiFlowRouter partitions every routed node's outflow among all of its
// lower neighbours, weighting each by slope raised to the partition
// exponent Exp (Exp 0 spreads evenly; larger exponents concentrate flow
// toward the steepest path).
type MultiFlowRouter struct{ Exp float64 }

func (MultiFlowRouter) Name() string { return "multi_flow_router" }

func (MultiFlowRouter) Flags() OpFlags { return OpFlags{UpdatesGraph: true, OutDir: Multi} }

func (m MultiFlowRouter) Apply(g *Graph, z []float64) error {
	p := g.Grid()
	rcv := make([]int, 0, g.Mnbr)
	w := make([]float64, 0, g.Mnbr)
	for i := 0; i < g.Nc; i++ {
		switch {
		case p.Status(i) == grid.Ghost:
			continue
		case p.Status(i).BaseLevel():
			g.SetOutlet(i)
			continue
		}
		nbr, dst := p.Neighbors(i), p.Distances(i)
		rcv, w = rcv[:0], w[:0]
		sw := 0.
		for k, j := range nbr {
			if p.Status(j) == grid.Ghost {
				continue
			}
			if s := (z[i] - z[j]) / dst[k]; s > 0. {
				wj := math.Pow(s, m.Exp)
				rcv = append(rcv, j)
				w = append(w, wj)
				sw += wj
			}
		}
		if len(rcv) == 0 {
			g.SetPit(i)
			continue
		}
		for k := range w {
			w[k] /= sw
		}
		if err := g.SetReceivers(i, rcv, w); err != nil {
			return err
		}
	}
	return nil
}
