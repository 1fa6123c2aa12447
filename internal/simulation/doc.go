// Package simulation provides a multi-cycle test harness for validating
// emergent dynamics of the relational mesh.
//
// The simulation exercises the real Mesh, Engine, and diagnostics — no
// mocks. Scenarios are Go builders that construct pre-seeded meshes and
// run configurable numbers of update cycles, capturing per-cycle edge
// snapshots for property-based assertions.
//
// Usage:
//
//	func TestObligationConvergence(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:   "obligation-convergence",
//	        Units:  []simulation.UnitSpec{...},
//	        Cycles: 20,
//	    })
//	    simulation.AssertObligationConverges(t, result, "a", "b", 0.99, 1.0, 15)
//	}
package simulation
