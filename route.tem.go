package flowgraph

import (
	"fmt"

	"github.com/maseology/flowgraph/grid"
	"github.com/maseology/goHydro/tem"
)

// TEMRouter takes single-receiver flow directions from a pre-built
// topologic elevation model (e.g. a hydrologically corrected .uhdem),
// bypassing slope computation entirely. TEM cell IDs must match provider
// node indices.
type TEMRouter struct{ TEM *tem.TEM }

func (TEMRouter) Name() string { return "tem_router" }

func (TEMRouter) Flags() OpFlags { return OpFlags{UpdatesGraph: true, OutDir: Single} }

func (t TEMRouter) Apply(g *Graph, z []float64) error {
	p := g.Grid()
	cids, ds := t.TEM.DownslopeContributingAreaIDs(-1)
	for _, c := range cids {
		if c < 0 || c >= g.Nc {
			return fmt.Errorf("TEM cell id %d not on grid", c)
		}
		switch {
		case p.Status(c) == grid.Ghost:
			continue
		case p.Status(c).BaseLevel():
			g.SetOutlet(c)
			continue
		}
		if d, ok := ds[c]; ok && d >= 0 {
			if err := g.SetReceiver(c, d); err != nil {
				return err
			}
		} else {
			// TEM farfield cell on a node the provider expects to route;
			// left as a pit so the run fails unless a resolver fixes it
			g.SetPit(c)
		}
	}
	return nil
}
