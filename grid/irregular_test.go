package grid_test

import (
	"testing"

	"github.com/maseology/flowgraph/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a 4-node chain with one wrapped (looped) end, the kind of topology a
// raster cannot express
func TestIrregular(t *testing.T) {
	nbr := [][]int{{1, 3}, {0, 2}, {1, 3}, {2, 0}}
	dst := [][]float64{{1., 1.}, {1., 1.}, {1., 1.}, {1., 1.}}
	area := []float64{1., 1., 1., 1.}
	stat := []grid.Status{grid.Looped, grid.Active, grid.Active, grid.FixedValue}

	g, err := grid.NewIrregular(nbr, dst, area, stat)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Ncells())
	assert.Equal(t, 2, g.MaxNeighbors())
	assert.Equal(t, []int{1, 3}, g.Neighbors(0))
	assert.Equal(t, grid.Looped, g.Status(0))
	assert.True(t, g.Status(0).Routed())
	assert.Equal(t, 1., g.CellArea(2))
}

func TestIrregularValidation(t *testing.T) {
	_, err := grid.NewIrregular([][]int{{1}, {0}}, [][]float64{{1.}}, []float64{1., 1.}, []grid.Status{0, 0})
	require.Error(t, err) // node counts disagree

	_, err = grid.NewIrregular([][]int{{1}, {0}}, [][]float64{{1., 2.}, {1.}}, []float64{1., 1.}, []grid.Status{0, 0})
	require.Error(t, err) // neighbours and distances disagree

	_, err = grid.NewIrregular([][]int{{5}, {0}}, [][]float64{{1.}, {1.}}, []float64{1., 1.}, []grid.Status{0, 0})
	require.Error(t, err) // neighbour out of range
}

// the engine contract holds for non-raster adjacency too: a line of nodes
// draining to one fixed end
func TestIrregularChainRouting(t *testing.T) {
	n := 6
	nbr := make([][]int, n)
	dst := make([][]float64, n)
	area := make([]float64, n)
	stat := make([]grid.Status, n)
	for i := 0; i < n; i++ {
		switch i {
		case 0:
			nbr[i], dst[i] = []int{1}, []float64{1.}
		case n - 1:
			nbr[i], dst[i] = []int{n - 2}, []float64{1.}
		default:
			nbr[i], dst[i] = []int{i - 1, i + 1}, []float64{1., 1.}
		}
		area[i] = 2.
		stat[i] = grid.Active
	}
	stat[0] = grid.FixedValue

	g, err := grid.NewIrregular(nbr, dst, area, stat)
	require.NoError(t, err)
	assert.Equal(t, 2, g.MaxNeighbors())
	assert.Len(t, g.Neighbors(3), 2)
}
