package diagnostics

import (
	"math"
	"testing"

	"github.com/sovmesh/relmesh/internal/dynamics"
	"github.com/sovmesh/relmesh/internal/mesh"
)

func TestReciprocityScore_EmptyMesh(t *testing.T) {
	if got := ReciprocityScore(mesh.New()); got != 0.0 {
		t.Errorf("ReciprocityScore(empty) = %f, want 0.0", got)
	}
}

func TestSolitonStats_EmptyMesh(t *testing.T) {
	got := SolitonStats(mesh.New())
	if got != (Stats{}) {
		t.Errorf("SolitonStats(empty) = %+v, want zero value", got)
	}
}

func TestReciprocityScore_HunterScenario(t *testing.T) {
	m := mesh.New()
	m.AddRelationalUnit("hunter", "caribou", "hunt", 1.0)
	m.AddRelationalUnit("hunter", "land", "stewardship", 0.8)
	m.AddRelationalUnit("caribou", "land", "graze", 0.9)

	// Every directed edge has a reciprocal twin, so the score is the mean
	// of the three unit obligations: (1.0+0.8+0.9)/3.
	if got, want := ReciprocityScore(m), 0.9; math.Abs(got-want) > 1e-9 {
		t.Errorf("ReciprocityScore = %f, want %f", got, want)
	}
}

func TestReciprocityScore_IgnoresAsymmetricEdges(t *testing.T) {
	m := mesh.New()
	m.AddRelationalUnit("a", "b", "x", 0.6)
	// One-way edge with maximal obligation must not move the score.
	m.RestoreEdge(mesh.EdgeRecord{Source: "a", Target: "c", Context: "y", Obligation: 1.0})

	if got, want := ReciprocityScore(m), 0.6; math.Abs(got-want) > 1e-9 {
		t.Errorf("ReciprocityScore = %f, want %f", got, want)
	}
}

func TestSolitonStats_CountsAllDirectedEdges(t *testing.T) {
	m := mesh.New()
	m.AddRelationalUnit("a", "b", "x", 1.0)
	m.SetSoliton("a", "b", 4.0)
	m.SetSoliton("b", "a", 2.0)
	// Asymmetric edge included in stats even though pulses skip it.
	m.RestoreEdge(mesh.EdgeRecord{Source: "a", Target: "c", Context: "y", Soliton: 6.0})

	got := SolitonStats(m)
	if got.Edges != 3 {
		t.Fatalf("Edges = %d, want 3", got.Edges)
	}
	if math.Abs(got.Total-12.0) > 1e-9 {
		t.Errorf("Total = %f, want 12.0", got.Total)
	}
	if math.Abs(got.Mean-4.0) > 1e-9 {
		t.Errorf("Mean = %f, want 4.0", got.Mean)
	}
	if got.Max != 6.0 {
		t.Errorf("Max = %f, want 6.0", got.Max)
	}
}

func TestSolitonStats_AfterPulse(t *testing.T) {
	m := mesh.New()
	m.AddRelationalUnit("hunter", "caribou", "hunt", 1.0)

	eng := dynamics.NewEngine(m, dynamics.DefaultConfig())
	eng.PropagateSoliton("hunter", 1.0)

	nudge := 1 + math.Sin(dynamics.DefaultConfig().PulseFrequency)
	got := SolitonStats(m)
	if got.Edges != 2 {
		t.Fatalf("Edges = %d, want 2", got.Edges)
	}
	if math.Abs(got.Total-2*nudge) > 1e-9 {
		t.Errorf("Total = %f, want %f", got.Total, 2*nudge)
	}
	if math.Abs(got.Max-nudge) > 1e-9 {
		t.Errorf("Max = %f, want %f", got.Max, nudge)
	}
}
