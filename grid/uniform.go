package grid

import (
	"fmt"
	"math"
)

// Uniform is a structured raster of square cells with D8 adjacency. Cell
// IDs run row-major from the upper-left. Neighbour sets are precomputed
// into flat stride-8 arrays. The perimeter defaults to fixed-value base
// level; use SetStatus to mark outlets, pits or ghost regions explicitly.
type Uniform struct {
	nr, nc int
	cs     float64
	stat   []Status
	nn     []int // neighbour count per cell
	nbr    []int // neighbour cell IDs, stride 8
	dst    []float64
}

// NewUniform builds a raster provider of nrows x ncols cells of width cs.
func NewUniform(nrows, ncols int, cs float64) (*Uniform, error) {
	if nrows < 1 || ncols < 1 {
		return nil, fmt.Errorf("grid.NewUniform: invalid dimensions %d x %d", nrows, ncols)
	}
	if cs <= 0. {
		return nil, fmt.Errorf("grid.NewUniform: invalid cell size %f", cs)
	}
	n := nrows * ncols
	u := &Uniform{
		nr: nrows, nc: ncols, cs: cs,
		stat: make([]Status, n),
		nn:   make([]int, n),
		nbr:  make([]int, n*8),
		dst:  make([]float64, n*8),
	}
	dd := cs * math.Sqrt2
	for i := 0; i < n; i++ {
		r, c := i/ncols, i%ncols
		if r == 0 || r == nrows-1 || c == 0 || c == ncols-1 {
			u.stat[i] = FixedValue
		}
		k := 0
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				rr, cc := r+dr, c+dc
				if rr < 0 || rr >= nrows || cc < 0 || cc >= ncols {
					continue
				}
				u.nbr[i*8+k] = rr*ncols + cc
				if dr != 0 && dc != 0 {
					u.dst[i*8+k] = dd
				} else {
					u.dst[i*8+k] = cs
				}
				k++
			}
		}
		u.nn[i] = k
	}
	return u, nil
}

// SetStatus replaces the per-cell status array.
func (u *Uniform) SetStatus(stat []Status) error {
	if len(stat) != len(u.stat) {
		return fmt.Errorf("grid.SetStatus: given %d cells, raster has %d", len(stat), len(u.stat))
	}
	copy(u.stat, stat)
	return nil
}

// CellID converts a (row, col) pair to a cell ID.
func (u *Uniform) CellID(r, c int) int { return r*u.nc + c }

// RowCol converts a cell ID to its (row, col) pair.
func (u *Uniform) RowCol(i int) (int, int) { return i / u.nc, i % u.nc }

func (u *Uniform) Nrows() int                { return u.nr }
func (u *Uniform) Ncols() int                { return u.nc }
func (u *Uniform) Ncells() int               { return u.nr * u.nc }
func (u *Uniform) MaxNeighbors() int         { return 8 }
func (u *Uniform) Neighbors(i int) []int     { return u.nbr[i*8 : i*8+u.nn[i]] }
func (u *Uniform) Distances(i int) []float64 { return u.dst[i*8 : i*8+u.nn[i]] }
func (u *Uniform) CellArea(i int) float64    { return u.cs * u.cs }
func (u *Uniform) Status(i int) Status       { return u.stat[i] }
