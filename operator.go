package flowgraph

import "fmt"

// FlowDir is the flow-direction kind carried through an operator pipeline.
type FlowDir byte

const (
	Undefined FlowDir = iota
	Single            // one receiver per node (steepest descent)
	Multi             // weighted distribution over downslope neighbours
)

func (d FlowDir) String() string {
	switch d {
	case Single:
		return "single"
	case Multi:
		return "multiple"
	}
	return "undefined"
}

// OpFlags declares an operator's capabilities to the engine.
type OpFlags struct {
	UpdatesGraph     bool
	UpdatesElevation bool
	InDir            FlowDir // required incoming direction kind, Undefined = any
	OutDir           FlowDir // direction kind emitted, Undefined = passes through
	SaveGraph        string  // graph snapshot name, empty = none
	SaveElevation    string  // elevation snapshot name, empty = none
}

// Operator is one named stage of a routing pipeline, applied in declared
// order against the shared routing graph store and working elevation.
type Operator interface {
	Name() string
	Flags() OpFlags
	Apply(g *Graph, elev []float64) error
}

// validate enforces the pipeline composition contract: at least one
// graph-updating stage, one unambiguous flow-direction kind, satisfied
// direction requirements, unique snapshot names.
func validate(ops []Operator) (FlowDir, error) {
	if len(ops) == 0 {
		return Undefined, fmt.Errorf("flowgraph: empty operator pipeline")
	}
	cur, updated := Undefined, false
	gnames, enames := make(map[string]bool), make(map[string]bool)
	for _, op := range ops {
		f := op.Flags()
		if f.InDir != Undefined && f.InDir != cur {
			return Undefined, fmt.Errorf("flowgraph: operator %s requires %s flow directions, pipeline carries %s", op.Name(), f.InDir, cur)
		}
		if f.UpdatesGraph {
			updated = true
		}
		if f.OutDir != Undefined {
			if cur != Undefined && cur != f.OutDir {
				return Undefined, fmt.Errorf("flowgraph: ambiguous flow directions, operator %s emits %s over %s", op.Name(), f.OutDir, cur)
			}
			cur = f.OutDir
		}
		if n := f.SaveGraph; n != "" {
			if gnames[n] {
				return Undefined, fmt.Errorf("flowgraph: duplicate graph snapshot name %q", n)
			}
			gnames[n] = true
		}
		if n := f.SaveElevation; n != "" {
			if enames[n] {
				return Undefined, fmt.Errorf("flowgraph: duplicate elevation snapshot name %q", n)
			}
			enames[n] = true
		}
	}
	if !updated {
		return Undefined, fmt.Errorf("flowgraph: pipeline has no operator updating the flow graph")
	}
	if cur == Undefined {
		return Undefined, fmt.Errorf("flowgraph: pipeline never defines a flow-direction kind")
	}
	return cur, nil
}

// Snapshot is a pass-through operator archiving the graph and/or working
// elevation, as they stand at its position in the pipeline, under Tag.
type Snapshot struct {
	Tag                 string
	SaveGraph, SaveElev bool
}

func (s Snapshot) Name() string { return "snapshot:" + s.Tag }

func (s Snapshot) Flags() OpFlags {
	var f OpFlags
	if s.SaveGraph {
		f.SaveGraph = s.Tag
	}
	if s.SaveElev {
		f.SaveElevation = s.Tag
	}
	return f
}

func (s Snapshot) Apply(*Graph, []float64) error { return nil }
