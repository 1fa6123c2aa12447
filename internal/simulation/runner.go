package simulation

import (
	"fmt"
	"testing"

	"github.com/sovmesh/relmesh/internal/diagnostics"
	"github.com/sovmesh/relmesh/internal/dynamics"
	"github.com/sovmesh/relmesh/internal/mesh"
)

// Runner orchestrates multi-cycle simulation experiments against a real
// mesh and dynamics engine.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	// Phase 1: Seed the mesh with relational units.
	m := mesh.NewWithCapacity(len(scenario.Units) * 2)
	for _, us := range scenario.Units {
		m.AddRelationalUnit(us.A, us.B, us.Context, us.Obligation)
	}

	// Phase 2: Configure the engine.
	cfg := dynamics.DefaultConfig()
	if scenario.Config != nil {
		cfg = *scenario.Config
	}
	engine := dynamics.NewEngine(m, cfg)

	strength := scenario.Strength
	if strength == 0 {
		strength = 1.0
	}
	input := scenario.InputStrength
	if input == 0 {
		input = 1.0
	}
	stubbornness := scenario.Stubbornness
	if stubbornness == 0 {
		stubbornness = 0.3
	}

	// Phase 3: Run cycles.
	cycles := make([]CycleResult, scenario.Cycles)
	for i := 0; i < scenario.Cycles; i++ {
		if scenario.BeforeCycle != nil {
			scenario.BeforeCycle(i, m)
		}

		sources := scenario.Sources
		if len(sources) == 0 {
			sources = m.Agents()
		}

		cr := CycleResult{Index: i}
		for _, source := range sources {
			cr.PairsPulsed += engine.PropagateSoliton(source, strength)
			cr.PairsDebated += engine.DebateUpdate(source, input, stubbornness)
		}
		cr.Reciprocity = diagnostics.ReciprocityScore(m)
		cr.SolitonTotal = diagnostics.SolitonStats(m).Total
		cr.EdgeState = snapshotEdges(m)
		cycles[i] = cr
	}

	return SimulationResult{
		Cycles: cycles,
		Mesh:   m,
	}
}

// snapshotEdges captures the current state of every directed edge.
func snapshotEdges(m *mesh.Mesh) map[string]mesh.Edge {
	state := make(map[string]mesh.Edge, m.EdgeCount())
	for _, rec := range m.Edges() {
		state[EdgeKey(rec.Source, rec.Target)] = mesh.Edge{
			Context:    rec.Context,
			Obligation: rec.Obligation,
			Soliton:    rec.Soliton,
		}
	}
	return state
}

// FormatCycleDebug returns a debug string for a cycle result.
func FormatCycleDebug(cr CycleResult) string {
	s := fmt.Sprintf("Cycle %d: pulsed=%d debated=%d reciprocity=%.4f soliton=%.4f\n",
		cr.Index, cr.PairsPulsed, cr.PairsDebated, cr.Reciprocity, cr.SolitonTotal)
	for k, e := range cr.EdgeState {
		s += fmt.Sprintf("  edge %s: obligation=%.6f soliton=%.6f\n", k, e.Obligation, e.Soliton)
	}
	return s
}
