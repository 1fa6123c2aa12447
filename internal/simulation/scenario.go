package simulation

import (
	"github.com/sovmesh/relmesh/internal/dynamics"
	"github.com/sovmesh/relmesh/internal/mesh"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name   string
	Units  []UnitSpec
	Cycles int

	// Config, when non-nil, replaces the default dynamics configuration.
	Config *dynamics.Config

	// Sources lists the agents pulsed and debated each cycle, in order.
	// Empty means every agent in the mesh, in sorted order.
	Sources []string

	// Strength is the pulse strength per cycle. Zero means 1.0.
	Strength float64

	// InputStrength is the consensus input per cycle. Zero means 1.0.
	InputStrength float64

	// Stubbornness is the consensus adoption weight per cycle.
	// Zero means 0.3.
	Stubbornness float64

	// BeforeCycle, when non-nil, is called before each cycle executes.
	// Use this to manipulate the mesh between cycles (e.g., removing a
	// unit mid-run to test invariant preservation).
	BeforeCycle func(cycle int, m *mesh.Mesh)
}

// UnitSpec defines a pre-seeded relational unit in the mesh.
type UnitSpec struct {
	A          string
	B          string
	Context    string
	Obligation float64
}

// CycleResult captures the outcome of a single update cycle.
type CycleResult struct {
	Index        int
	PairsPulsed  int
	PairsDebated int
	Reciprocity  float64
	SolitonTotal float64
	EdgeState    map[string]mesh.Edge // "src->tgt" → edge snapshot
}

// SimulationResult captures all cycles and the final mesh state.
type SimulationResult struct {
	Cycles []CycleResult
	Mesh   *mesh.Mesh
}

// EdgeKey builds the canonical map key for a directed edge.
func EdgeKey(src, tgt string) string {
	return src + "->" + tgt
}
