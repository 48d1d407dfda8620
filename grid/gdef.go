package grid

import (
	"fmt"
	"math"

	gogrid "github.com/maseology/goHydro/grid"
)

// FromGDEF builds a provider from a grid definition with active cells
// defined. Active cells route; active cells on the edge of the active
// region are set to fixed-value base level; everything else is ghost.
// Rotated definitions are not supported.
func FromGDEF(gd *gogrid.Definition) (*Irregular, error) {
	if len(gd.Sactives) <= 0 {
		return nil, fmt.Errorf("grid.FromGDEF: grid definition requires active cells")
	}
	n, cs := gd.Ncells(), gd.Cwidth

	// cross-reference active cells by integer grid coordinates
	type rc struct{ x, y int }
	key := func(cid int) rc {
		xy := gd.Coord[cid]
		return rc{int(math.Round(xy.X / cs)), int(math.Round(xy.Y / cs))}
	}
	cxr := make(map[rc]int, len(gd.Sactives))
	for _, cid := range gd.Sactives {
		cxr[key(cid)] = cid
	}

	nbr := make([][]int, n)
	dst := make([][]float64, n)
	area := make([]float64, n)
	stat := make([]Status, n)
	for i := 0; i < n; i++ {
		area[i] = gd.CellArea()
		stat[i] = Ghost
	}

	dd := cs * math.Sqrt2
	for _, cid := range gd.Sactives {
		k := key(cid)
		nb := make([]int, 0, 8)
		ds := make([]float64, 0, 8)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if j, ok := cxr[rc{k.x + dx, k.y + dy}]; ok {
					nb = append(nb, j)
					if dx != 0 && dy != 0 {
						ds = append(ds, dd)
					} else {
						ds = append(ds, cs)
					}
				}
			}
		}
		nbr[cid], dst[cid] = nb, ds
		if len(nb) < 8 { // edge of the active region drains out
			stat[cid] = FixedValue
		} else {
			stat[cid] = Active
		}
	}

	return NewIrregular(nbr, dst, area, stat)
}
