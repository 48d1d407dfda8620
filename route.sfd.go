package flowgraph

import "github.com/maseology/flowgraph/grid"

// SingleFlowRouter assigns every routed node one receiver along its
// steepest downslope edge. A node with no lower neighbour is marked as a
// pit, to be fixed by a sink resolver placed earlier (elevation-correcting)
// or later (graph-rerouting) in the pipeline; base-level nodes become
// terminal outlets.
type SingleFlowRouter struct{}

func (SingleFlowRouter) Name() string { return "single_flow_router" }

func (SingleFlowRouter) Flags() OpFlags { return OpFlags{UpdatesGraph: true, OutDir: Single} }

func (SingleFlowRouter) Apply(g *Graph, z []float64) error {
	p := g.Grid()
	for i := 0; i < g.Nc; i++ {
		switch {
		case p.Status(i) == grid.Ghost:
			continue
		case p.Status(i).BaseLevel():
			g.SetOutlet(i)
			continue
		}
		nbr, dst := p.Neighbors(i), p.Distances(i)
		rcv, smax := -1, 0.
		for k, j := range nbr {
			if p.Status(j) == grid.Ghost {
				continue
			}
			if s := (z[i] - z[j]) / dst[k]; s > smax {
				smax, rcv = s, j
			}
		}
		if rcv < 0 {
			g.SetPit(i)
			continue
		}
		if err := g.SetReceiver(i, rcv); err != nil {
			return err
		}
	}
	return nil
}
