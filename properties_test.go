package flowgraph_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/maseology/flowgraph"
	"github.com/maseology/flowgraph/grid"
	"github.com/maseology/mmaths"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randSurface(rng *rand.Rand, n int) []float64 {
	z := make([]float64, n)
	for i := range z {
		z[i] = mmaths.LinearTransform(0., 100., rng.Float64())
	}
	return z
}

func buildRandom(t *testing.T, ops ...flowgraph.Operator) (*flowgraph.FlowGraph, []float64) {
	t.Helper()
	u, err := grid.NewUniform(12, 16, 50.)
	require.NoError(t, err)
	fg, err := flowgraph.New(u, ops...)
	require.NoError(t, err)
	rng := rand.New(mrg63k3a.New())
	z := randSurface(rng, u.Ncells())
	_, err = fg.UpdateRoutes(z)
	require.NoError(t, err)
	return fg, z
}

// post-run, every active node's receiver weights sum to one; base-level
// nodes carry none.
func TestWeightSum(t *testing.T) {
	fg, _ := buildRandom(t, flowgraph.FillSinkResolver{}, flowgraph.MultiFlowRouter{Exp: 1.1})
	g, p := fg.Impl(), fg.Grid()
	for i := 0; i < fg.Size(); i++ {
		s := 0.
		for _, w := range g.Weights(i) {
			s += w
		}
		if p.Status(i).Routed() {
			assert.InDelta(t, 1., s, 1e-6, "node %d", i)
		} else {
			assert.Zero(t, s, "node %d", i)
		}
	}
}

// the receiver relation is a DAG: every node precedes its receivers in
// the topological ordering.
func TestAcyclic(t *testing.T) {
	for _, ops := range [][]flowgraph.Operator{
		{flowgraph.FillSinkResolver{}, flowgraph.SingleFlowRouter{}},
		{flowgraph.FillSinkResolver{}, flowgraph.MultiFlowRouter{Exp: 1.}},
	} {
		fg, _ := buildRandom(t, ops...)
		g := fg.Impl()
		pos := make(map[int]int, fg.Size())
		for k, i := range g.TopoOrder() {
			pos[i] = k
		}
		for i := 0; i < fg.Size(); i++ {
			for _, r := range g.Receivers(i) {
				require.Less(t, pos[i], pos[r], "%d -> %d", i, r)
			}
		}
	}
}

// accumulation conserves mass: everything sourced arrives at a terminal
// outlet, nothing more, nothing less.
func TestMassConservation(t *testing.T) {
	fg, _ := buildRandom(t, flowgraph.FillSinkResolver{}, flowgraph.MultiFlowRouter{Exp: 1.3})
	rng := rand.New(mrg63k3a.New())
	src := make([]float64, fg.Size())
	in := 0.
	for i := range src {
		src[i] = mmaths.LinearTransform(.1, 10., rng.Float64())
		in += src[i]
	}
	acc, err := fg.Accumulate(src)
	require.NoError(t, err)

	g, out := fg.Impl(), 0.
	for i := 0; i < fg.Size(); i++ {
		if len(g.Receivers(i)) == 0 {
			out += acc[i]
		}
	}
	assert.InDelta(t, in, out, in*1e-12)
}

// accumulation is a pure function of the current graph state.
func TestAccumulateIdempotent(t *testing.T) {
	fg, _ := buildRandom(t, flowgraph.FillSinkResolver{}, flowgraph.SingleFlowRouter{})
	src := make([]float64, fg.Size())
	for i := range src {
		src[i] = float64(i%7) + 1.
	}
	a1, err := fg.Accumulate(src)
	require.NoError(t, err)
	a2, err := fg.Accumulate(src)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

// the wave-parallel pass reproduces the serial pass.
func TestAccumulateConcurrent(t *testing.T) {
	fg, _ := buildRandom(t, flowgraph.FillSinkResolver{}, flowgraph.MultiFlowRouter{Exp: 1.1})
	rng := rand.New(mrg63k3a.New())
	src := make([]float64, fg.Size())
	for i := range src {
		src[i] = rng.Float64()
	}
	a1, err := fg.Accumulate(src)
	require.NoError(t, err)
	a2, err := fg.AccumulateConcurrent(src)
	require.NoError(t, err)
	require.Equal(t, len(a1), len(a2))
	for i := range a1 {
		assert.InDelta(t, a1[i], a2[i], 1e-9)
	}
}

// same surface, same pipeline: identical routing and ordering, ties
// broken by node index.
func TestDeterministicOrdering(t *testing.T) {
	u, err := grid.NewUniform(9, 9, 25.)
	require.NoError(t, err)
	rng := rand.New(mrg63k3a.New())
	z := randSurface(rng, u.Ncells())

	run := func() *flowgraph.FlowGraph {
		fg, err := flowgraph.New(u, flowgraph.FillSinkResolver{}, flowgraph.SingleFlowRouter{})
		require.NoError(t, err)
		_, err = fg.UpdateRoutes(z)
		require.NoError(t, err)
		return fg
	}
	f1, f2 := run(), run()
	assert.Equal(t, f1.Impl().TopoOrder(), f2.Impl().TopoOrder())
	assert.Equal(t, f1.Impl().Recv, f2.Impl().Recv)
	assert.Equal(t, f1.Impl().Wrec, f2.Impl().Wrec)
}

// basin labels partition all non-ghost nodes and agree with the receiver
// chain's terminal outlet.
func TestBasinPartition(t *testing.T) {
	fg, _ := buildRandom(t, flowgraph.FillSinkResolver{}, flowgraph.SingleFlowRouter{})
	bsn, err := fg.Basins()
	require.NoError(t, err)

	g := fg.Impl()
	term := func(i int) int {
		for len(g.Receivers(i)) > 0 {
			i = g.Receivers(i)[0]
		}
		return i
	}
	seen := make(map[int]bool)
	for i := 0; i < fg.Size(); i++ {
		require.GreaterOrEqual(t, bsn[i], 0)
		require.Equal(t, bsn[term(i)], bsn[i], "node %d", i)
		seen[bsn[i]] = true
	}

	ids, szs, err := fg.BasinSizes()
	require.NoError(t, err)
	require.Equal(t, len(seen), len(ids))
	n := 0
	for _, s := range szs {
		n += s
	}
	assert.Equal(t, fg.Size(), n)

	outs, err := fg.Outlets()
	require.NoError(t, err)
	assert.Equal(t, len(seen), len(outs))
}

func TestGraphGobRoundTrip(t *testing.T) {
	fg, _ := buildRandom(t, flowgraph.FillSinkResolver{}, flowgraph.SingleFlowRouter{})
	fp := filepath.Join(t.TempDir(), "graph.gob")
	require.NoError(t, fg.Impl().SaveGob(fp))

	g, err := flowgraph.LoadGobGraph(fp)
	require.NoError(t, err)
	assert.Equal(t, fg.Impl().Nc, g.Nc)
	assert.Equal(t, fg.Impl().Recv, g.Recv)
	assert.Equal(t, fg.Impl().Wrec, g.Wrec)
	assert.Equal(t, fg.Impl().Ord, g.Ord)
}
