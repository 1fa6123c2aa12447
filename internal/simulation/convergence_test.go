package simulation

import (
	"testing"
)

// With a steady input signal of 1.0 the consensus rule pulls every
// obligation monotonically onto the cap.
func TestObligationConvergence(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "obligation-convergence",
		Units: []UnitSpec{
			{A: "hunter", B: "caribou", Context: "hunt", Obligation: 1.0},
			{A: "hunter", B: "land", Context: "stewardship", Obligation: 0.8},
			{A: "caribou", B: "land", Context: "graze", Obligation: 0.9},
		},
		Cycles:  20,
		Sources: []string{"hunter"},
	})

	AssertObligationConverges(t, result, "hunter", "caribou", 0.999, 1.0, 15)
	AssertObligationConverges(t, result, "hunter", "land", 0.999, 1.0, 15)
	AssertBoundsHold(t, result)
	AssertPairsSymmetric(t, result)
}

// A weak input signal drags a strong obligation downward instead.
func TestObligationDecaysTowardWeakSignal(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "obligation-decay",
		Units: []UnitSpec{
			{A: "a", B: "b", Context: "x", Obligation: 1.0},
		},
		Cycles:        30,
		Sources:       []string{"a"},
		InputStrength: 0.1,
		Stubbornness:  0.5,
	})

	last := result.Cycles[len(result.Cycles)-1].EdgeState[EdgeKey("a", "b")]
	if last.Obligation > 0.3 {
		t.Errorf("obligation = %.6f after 30 cycles of weak input, want well below start", last.Obligation)
	}
	AssertBoundsHold(t, result)
}

func TestSolitonAccumulatesUnderSteadyPulsing(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "soliton-accumulation",
		Units: []UnitSpec{
			{A: "hunter", B: "caribou", Context: "hunt", Obligation: 1.0},
			{A: "hunter", B: "land", Context: "stewardship", Obligation: 0.8},
		},
		Cycles:   50,
		Strength: 2.0,
	})

	AssertSolitonNonDecreasing(t, result)
	AssertBoundsHold(t, result)

	first := result.Cycles[0].SolitonTotal
	last := result.Cycles[len(result.Cycles)-1].SolitonTotal
	if last <= first {
		t.Errorf("soliton total did not grow: %.6f -> %.6f", first, last)
	}
}
