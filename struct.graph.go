package flowgraph

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"github.com/maseology/flowgraph/grid"
)

const (
	norecv = -1   // sentinel: empty receiver/donor slot
	wtol   = 1e-6 // receiver weight-sum tolerance
)

// Graph is the routing graph store: per-node receiver/donor topology held
// in flat stride-packed arrays keyed by node index. Receivers are written
// by operators through SetReceiver(s); donors and the topological ordering
// are derived, rebuilt after every graph-updating operator and never set
// directly. An unresolved pit is marked as its own receiver until a sink
// resolver reroutes it.
type Graph struct {
	Nc, Mnbr int       // node count; receiver/donor stride (max neighbour count)
	Nrec     []int     // receiver count per node
	Recv     []int     // receiver node index, stride Mnbr
	Wrec     []float64 // receiver weight, stride Mnbr; sums to 1 where Nrec>0
	Ndnr     []int     // donor count per node (derived)
	Dnr      []int     // donor node index, stride Mnbr (derived)
	Ord      []int     // upstream-first topological order over non-ghost nodes
	Basin    []int     // basin label per node, -1 until computed

	p grid.Provider
}

func newGraph(p grid.Provider) *Graph {
	nc, m := p.Ncells(), p.MaxNeighbors()
	if m < 1 {
		m = 1
	}
	g := &Graph{
		Nc: nc, Mnbr: m,
		Nrec:  make([]int, nc),
		Recv:  make([]int, nc*m),
		Wrec:  make([]float64, nc*m),
		Ndnr:  make([]int, nc),
		Dnr:   make([]int, nc*m),
		Basin: make([]int, nc),
		p:     p,
	}
	g.reset()
	return g
}

func (g *Graph) reset() {
	for i := range g.Recv {
		g.Recv[i], g.Dnr[i], g.Wrec[i] = norecv, norecv, 0.
	}
	for i := range g.Nrec {
		g.Nrec[i], g.Ndnr[i], g.Basin[i] = 0, 0, -1
	}
	g.Ord = nil
}

// Grid returns the adjacency provider the graph is built over.
func (g *Graph) Grid() grid.Provider { return g.p }

// SetReceivers assigns node i's receiver set. Weights must sum to 1.
func (g *Graph) SetReceivers(i int, recv []int, w []float64) error {
	if i < 0 || i >= g.Nc {
		return fmt.Errorf("SetReceivers: node %d out of range", i)
	}
	if len(recv) != len(w) {
		return fmt.Errorf("SetReceivers: node %d given %d receivers, %d weights", i, len(recv), len(w))
	}
	if len(recv) > g.Mnbr {
		return fmt.Errorf("SetReceivers: node %d given %d receivers, max %d", i, len(recv), g.Mnbr)
	}
	if len(recv) > 0 {
		s := 0.
		for k, r := range recv {
			if r < 0 || r >= g.Nc {
				return fmt.Errorf("SetReceivers: node %d lists receiver %d out of range", i, r)
			}
			s += w[k]
		}
		if math.Abs(s-1.) > wtol {
			return fmt.Errorf("SetReceivers: node %d receiver weights sum to %f", i, s)
		}
	}
	g.Nrec[i] = len(recv)
	for k := 0; k < g.Mnbr; k++ {
		if k < len(recv) {
			g.Recv[i*g.Mnbr+k], g.Wrec[i*g.Mnbr+k] = recv[k], w[k]
		} else {
			g.Recv[i*g.Mnbr+k], g.Wrec[i*g.Mnbr+k] = norecv, 0.
		}
	}
	return nil
}

// SetReceiver assigns node i a single receiver of full weight.
func (g *Graph) SetReceiver(i, r int) error {
	if i < 0 || i >= g.Nc {
		return fmt.Errorf("SetReceiver: node %d out of range", i)
	}
	if r < 0 || r >= g.Nc {
		return fmt.Errorf("SetReceiver: node %d lists receiver %d out of range", i, r)
	}
	return g.setOne(i, r)
}

// SetOutlet clears node i's receivers, marking it a terminal outlet.
func (g *Graph) SetOutlet(i int) {
	g.Nrec[i] = 0
	for k := 0; k < g.Mnbr; k++ {
		g.Recv[i*g.Mnbr+k], g.Wrec[i*g.Mnbr+k] = norecv, 0.
	}
}

// SetPit marks node i as an unresolved pit (its own receiver).
func (g *Graph) SetPit(i int) { g.setOne(i, i) }

func (g *Graph) setOne(i, r int) error {
	g.Nrec[i] = 1
	g.Recv[i*g.Mnbr], g.Wrec[i*g.Mnbr] = r, 1.
	for k := 1; k < g.Mnbr; k++ {
		g.Recv[i*g.Mnbr+k], g.Wrec[i*g.Mnbr+k] = norecv, 0.
	}
	return nil
}

// IsPit reports whether node i is marked as an unresolved pit.
func (g *Graph) IsPit(i int) bool { return g.Nrec[i] == 1 && g.Recv[i*g.Mnbr] == i }

// terminal nodes end a flow path: outlets and unresolved pits.
func (g *Graph) terminal(i int) bool { return g.Nrec[i] == 0 || g.IsPit(i) }

// Receivers returns a live view of node i's receiver indices.
func (g *Graph) Receivers(i int) []int { return g.Recv[i*g.Mnbr : i*g.Mnbr+g.Nrec[i]] }

// Weights returns a live view of node i's receiver weights.
func (g *Graph) Weights(i int) []float64 { return g.Wrec[i*g.Mnbr : i*g.Mnbr+g.Nrec[i]] }

// Donors returns a live view of node i's donor indices.
func (g *Graph) Donors(i int) []int { return g.Dnr[i*g.Mnbr : i*g.Mnbr+g.Ndnr[i]] }

// TopoOrder returns the upstream-first topological ordering.
func (g *Graph) TopoOrder() []int { return g.Ord }

// dominant returns node i's largest-weight receiver, lowest index on ties.
func (g *Graph) dominant(i int) int {
	r, w := g.Recv[i*g.Mnbr], g.Wrec[i*g.Mnbr]
	for k := 1; k < g.Nrec[i]; k++ {
		if g.Wrec[i*g.Mnbr+k] > w || (g.Wrec[i*g.Mnbr+k] == w && g.Recv[i*g.Mnbr+k] < r) {
			r, w = g.Recv[i*g.Mnbr+k], g.Wrec[i*g.Mnbr+k]
		}
	}
	return r
}

// Copy returns a deep copy of the graph state sharing the provider.
func (g *Graph) Copy() *Graph {
	cpy := &Graph{Nc: g.Nc, Mnbr: g.Mnbr, p: g.p}
	cp := func(a []int) []int {
		o := make([]int, len(a))
		copy(o, a)
		return o
	}
	cpy.Nrec, cpy.Recv, cpy.Ndnr, cpy.Dnr, cpy.Basin = cp(g.Nrec), cp(g.Recv), cp(g.Ndnr), cp(g.Dnr), cp(g.Basin)
	if g.Ord != nil {
		cpy.Ord = cp(g.Ord)
	}
	cpy.Wrec = make([]float64, len(g.Wrec))
	copy(cpy.Wrec, g.Wrec)
	return cpy
}

// SaveGob writes the graph arrays to file.
func (g *Graph) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" graph.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(g); err != nil {
		return fmt.Errorf(" graph.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobGraph reads graph arrays saved with SaveGob. The returned graph
// carries no provider and serves read-only queries.
func LoadGobGraph(fp string) (*Graph, error) {
	var g Graph
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, err
	}
	f.Close()
	return &g, nil
}
