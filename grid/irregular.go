package grid

import "fmt"

// Irregular serves adjacency from explicit per-node lists, covering
// unstructured meshes, spherical tessellations and wrapped topologies
// that cannot be expressed by a raster.
type Irregular struct {
	nbr  [][]int
	dst  [][]float64
	area []float64
	stat []Status
	mnbr int
}

// NewIrregular builds a provider from parallel per-node neighbour,
// distance, area and status lists.
func NewIrregular(nbr [][]int, dst [][]float64, area []float64, stat []Status) (*Irregular, error) {
	n := len(nbr)
	if len(dst) != n || len(area) != n || len(stat) != n {
		return nil, fmt.Errorf("grid.NewIrregular: inconsistent node counts %d/%d/%d/%d", n, len(dst), len(area), len(stat))
	}
	mnbr := 1
	for i := 0; i < n; i++ {
		if len(dst[i]) != len(nbr[i]) {
			return nil, fmt.Errorf("grid.NewIrregular: node %d has %d neighbours but %d distances", i, len(nbr[i]), len(dst[i]))
		}
		if len(nbr[i]) > mnbr {
			mnbr = len(nbr[i])
		}
		for _, j := range nbr[i] {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("grid.NewIrregular: node %d lists neighbour %d out of range", i, j)
			}
		}
	}
	return &Irregular{nbr: nbr, dst: dst, area: area, stat: stat, mnbr: mnbr}, nil
}

func (g *Irregular) Ncells() int               { return len(g.nbr) }
func (g *Irregular) MaxNeighbors() int         { return g.mnbr }
func (g *Irregular) Neighbors(i int) []int     { return g.nbr[i] }
func (g *Irregular) Distances(i int) []float64 { return g.dst[i] }
func (g *Irregular) CellArea(i int) float64    { return g.area[i] }
func (g *Irregular) Status(i int) Status       { return g.stat[i] }
