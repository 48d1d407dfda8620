package grid_test

import (
	"math"
	"testing"

	"github.com/maseology/flowgraph/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformAdjacency(t *testing.T) {
	u, err := grid.NewUniform(4, 5, 10.)
	require.NoError(t, err)
	assert.Equal(t, 20, u.Ncells())
	assert.Equal(t, 8, u.MaxNeighbors())

	assert.Len(t, u.Neighbors(u.CellID(0, 0)), 3)  // corner
	assert.Len(t, u.Neighbors(u.CellID(0, 2)), 5)  // edge
	assert.Len(t, u.Neighbors(u.CellID(1, 2)), 8)  // interior
}

func TestUniformNeighborSets(t *testing.T) {
	u, err := grid.NewUniform(3, 3, 2.)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3, 4}, u.Neighbors(0))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, u.Neighbors(4))

	// cardinal neighbours one cell width away, diagonals sqrt2 further
	nbr, dst := u.Neighbors(4), u.Distances(4)
	for k, j := range nbr {
		r, c := u.RowCol(j)
		if r != 1 && c != 1 {
			assert.InDelta(t, 2.*math.Sqrt2, dst[k], 1e-12)
		} else {
			assert.Equal(t, 2., dst[k])
		}
	}
	assert.Equal(t, 4., u.CellArea(4))
}

func TestUniformStatus(t *testing.T) {
	u, err := grid.NewUniform(4, 4, 1.)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		r, c := u.RowCol(i)
		if r == 0 || r == 3 || c == 0 || c == 3 {
			assert.Equal(t, grid.FixedValue, u.Status(i))
			assert.True(t, u.Status(i).BaseLevel())
		} else {
			assert.Equal(t, grid.Active, u.Status(i))
			assert.True(t, u.Status(i).Routed())
		}
	}

	require.Error(t, u.SetStatus(make([]grid.Status, 7)))
	stat := make([]grid.Status, 16)
	stat[5] = grid.Ghost
	require.NoError(t, u.SetStatus(stat))
	assert.Equal(t, grid.Ghost, u.Status(5))
	assert.Equal(t, grid.Active, u.Status(0))
}

func TestUniformInvalid(t *testing.T) {
	_, err := grid.NewUniform(0, 5, 1.)
	require.Error(t, err)
	_, err = grid.NewUniform(5, 5, 0.)
	require.Error(t, err)
}
