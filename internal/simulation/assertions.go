package simulation

import (
	"testing"

	"github.com/sovmesh/relmesh/internal/mesh"
)

// AssertObligationConverges asserts that a specific edge obligation settles
// within [min, max] after a given cycle index.
func AssertObligationConverges(t *testing.T, result SimulationResult, src, tgt string, min, max float64, afterCycle int) {
	t.Helper()
	key := EdgeKey(src, tgt)
	for i := afterCycle; i < len(result.Cycles); i++ {
		e, ok := result.Cycles[i].EdgeState[key]
		if !ok {
			t.Errorf("AssertObligationConverges: cycle %d: edge %s not found", i, key)
			continue
		}
		if e.Obligation < min || e.Obligation > max {
			t.Errorf("AssertObligationConverges: cycle %d: edge %s obligation %.6f not in [%.4f, %.4f]", i, key, e.Obligation, min, max)
		}
	}
}

// AssertBoundsHold asserts that every edge stays inside the obligation and
// soliton bounds in every cycle.
func AssertBoundsHold(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, cr := range result.Cycles {
		for key, e := range cr.EdgeState {
			if e.Obligation < mesh.ObligationMin || e.Obligation > mesh.ObligationMax {
				t.Errorf("AssertBoundsHold: cycle %d: edge %s obligation %.6f out of bounds", cr.Index, key, e.Obligation)
			}
			if e.Soliton < mesh.SolitonMin || e.Soliton > mesh.SolitonMax {
				t.Errorf("AssertBoundsHold: cycle %d: edge %s soliton %.6f out of bounds", cr.Index, key, e.Soliton)
			}
		}
	}
}

// AssertPairsSymmetric asserts that forward and reverse edges of every
// reciprocal pair carry identical state in the final cycle.
func AssertPairsSymmetric(t *testing.T, result SimulationResult) {
	t.Helper()
	if len(result.Cycles) == 0 {
		t.Fatal("AssertPairsSymmetric: no cycles")
	}
	last := result.Cycles[len(result.Cycles)-1].EdgeState
	for key, e := range last {
		var src, tgt string
		for i := 0; i+1 < len(key); i++ {
			if key[i] == '-' && key[i+1] == '>' {
				src, tgt = key[:i], key[i+2:]
				break
			}
		}
		rev, ok := last[EdgeKey(tgt, src)]
		if !ok {
			continue // one-way edge, nothing to compare
		}
		if e.Obligation != rev.Obligation || e.Soliton != rev.Soliton {
			t.Errorf("AssertPairsSymmetric: %s diverged from its reverse: %+v vs %+v", key, e, rev)
		}
	}
}

// AssertSolitonNonDecreasing asserts that total soliton energy never drops
// between consecutive cycles.
func AssertSolitonNonDecreasing(t *testing.T, result SimulationResult) {
	t.Helper()
	for i := 1; i < len(result.Cycles); i++ {
		prev, cur := result.Cycles[i-1].SolitonTotal, result.Cycles[i].SolitonTotal
		if cur < prev-1e-9 {
			t.Errorf("AssertSolitonNonDecreasing: cycle %d: soliton total dropped %.6f -> %.6f", i, prev, cur)
		}
	}
}
