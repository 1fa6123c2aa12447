// Package dynamics implements the two update rules that evolve relational
// mesh edge state: an aperiodic soliton energy pulse and a
// stubbornness-weighted consensus update. Both rules are symmetric — they
// write the same resulting value into the forward and reverse edges of each
// reciprocal pair — so the directed storage approximates a mutual
// relationship while still permitting divergence elsewhere.
package dynamics

import (
	"math"

	"github.com/sovmesh/relmesh/internal/mesh"
)

// Config holds the tunable parameters for the dynamics engine.
type Config struct {
	// PulseFrequency is the fixed angular frequency fed to sin() when
	// computing the propagation nudge. It stays constant for the engine's
	// lifetime; any value that is not a rational multiple of pi keeps
	// repeated pulse sequences from cycling exactly. Default: 79.79.
	PulseFrequency float64

	// ReinforcementGain scales the tanh reinforcement bonus applied after
	// the consensus blend. The bonus magnitude is always below the gain
	// because tanh saturates at 1. Default: 0.05.
	ReinforcementGain float64
}

// DefaultConfig returns the default dynamics configuration.
func DefaultConfig() Config {
	return Config{
		PulseFrequency:    79.79,
		ReinforcementGain: 0.05,
	}
}

// Engine evolves edge state on a single mesh. It holds no mutable state of
// its own and no scheduling logic; callers decide when and how often each
// rule runs.
type Engine struct {
	config Config
	mesh   *mesh.Mesh
}

// NewEngine creates a dynamics engine over the given mesh.
func NewEngine(m *mesh.Mesh, config Config) *Engine {
	return &Engine{config: config, mesh: m}
}

// PropagateSoliton injects an energy pulse at the source agent. Every
// outgoing neighbor that also holds a reciprocal edge back to the source
// receives the same nudge, strength * (1 + sin(PulseFrequency)), added to
// the current soliton and clamped into the mesh bounds; the clamped value
// is written to both directions of the pair. Neighbors without a reciprocal
// edge are skipped on purpose — the pulse targets mutual relationships
// only. An absent source is a no-op.
//
// Returns the number of reciprocal pairs that received the pulse.
func (e *Engine) PropagateSoliton(source string, strength float64) int {
	nudge := strength * (1 + math.Sin(e.config.PulseFrequency))

	pairs := 0
	for _, neighbor := range e.mesh.NeighborsOf(source) {
		forward, ok := e.mesh.GetEdge(source, neighbor)
		if !ok {
			continue
		}
		if !e.mesh.HasEdge(neighbor, source) {
			continue
		}

		// SetSoliton clamps, so both directions land on the identical
		// bounded value.
		next := forward.Soliton + nudge
		e.mesh.SetSoliton(source, neighbor, next)
		e.mesh.SetSoliton(neighbor, source, next)
		pairs++
	}
	return pairs
}

// DebateUpdate runs one consensus round at the agent. For every reciprocal
// pair the obligation is blended with the input signal,
//
//	blend = obligation*(1-stubbornness) + inputStrength*stubbornness
//
// then reinforced by 1 + ReinforcementGain*tanh(inputStrength) and capped
// at the obligation ceiling. Note the inverted naming: stubbornness is the
// weight given to the NEW signal, so a higher value adopts inputStrength
// faster. The formula is kept exactly as shipped.
//
// inputStrength below zero is floored at zero and stubbornness is clamped
// into [0, 1]. An absent agent is a no-op. Returns the number of
// reciprocal pairs updated.
func (e *Engine) DebateUpdate(agent string, inputStrength, stubbornness float64) int {
	if inputStrength < 0 || math.IsNaN(inputStrength) {
		inputStrength = 0
	}
	if stubbornness < 0 || math.IsNaN(stubbornness) {
		stubbornness = 0
	} else if stubbornness > 1 {
		stubbornness = 1
	}

	reinforcement := 1 + e.config.ReinforcementGain*math.Tanh(inputStrength)

	pairs := 0
	for _, neighbor := range e.mesh.NeighborsOf(agent) {
		forward, ok := e.mesh.GetEdge(agent, neighbor)
		if !ok {
			continue
		}
		if !e.mesh.HasEdge(neighbor, agent) {
			continue
		}

		blend := forward.Obligation*(1-stubbornness) + inputStrength*stubbornness
		next := blend * reinforcement
		e.mesh.SetObligation(agent, neighbor, next)
		e.mesh.SetObligation(neighbor, agent, next)
		pairs++
	}
	return pairs
}
