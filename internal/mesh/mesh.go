// Package mesh implements the relational mesh: a directed graph of named
// agents connected by reciprocal relationship edges. Each directed edge
// carries a bounded obligation weight and a bounded soliton energy value.
// The mesh knows nothing about the update rules layered on top of it; it
// only guarantees the structural and bounds invariants.
package mesh

import (
	"math"
	"sort"
	"sync"
)

// Bounds for edge state. Mutators clamp into these ranges rather than
// reject out-of-range values.
const (
	ObligationMin = 0.0
	ObligationMax = 1.0
	SolitonMin    = 0.0
	SolitonMax    = 10.0
)

// Edge holds the state of one directed relationship instance.
// Context is fixed at creation; Obligation and Soliton evolve under the
// dynamics rules and stay within the package bounds after every mutation.
type Edge struct {
	Context    string  `json:"context"`
	Obligation float64 `json:"obligation"`
	Soliton    float64 `json:"soliton"`
}

// EdgeRecord is an Edge annotated with its endpoints, used for snapshots,
// exports, and persistence.
type EdgeRecord struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Context    string  `json:"context"`
	Obligation float64 `json:"obligation"`
	Soliton    float64 `json:"soliton"`
}

// Mesh owns the full collection of agents and directed edges. Edges are
// keyed by ordered (source, target) pairs; at most one edge exists per
// ordered pair, and re-adding a unit overwrites the previous edge state.
//
// A single RWMutex guards the whole mesh, so reads and writes are mutually
// exclusive per instance. Dynamics operations assume a single writer;
// callers that drive updates from multiple goroutines must serialize at a
// higher level.
type Mesh struct {
	mu    sync.RWMutex
	edges map[string]map[string]*Edge // source -> target -> state
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{edges: make(map[string]map[string]*Edge)}
}

// NewWithCapacity creates an empty mesh sized for roughly agentHint agents.
// The hint is informational only, not a capacity limit.
func NewWithCapacity(agentHint int) *Mesh {
	if agentHint < 0 {
		agentHint = 0
	}
	return &Mesh{edges: make(map[string]map[string]*Edge, agentHint)}
}

// AddRelationalUnit creates (or overwrites) the reciprocal pair of directed
// edges between a and b, both carrying the given context and obligation and
// a soliton of zero. Obligation is clamped into [ObligationMin,
// ObligationMax] before storage; out-of-range input is tolerated, not
// rejected. There are no error conditions.
func (m *Mesh) AddRelationalUnit(a, b, context string, obligation float64) {
	ob := clamp(obligation, ObligationMin, ObligationMax)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.setEdgeLocked(a, b, &Edge{Context: context, Obligation: ob})
	m.setEdgeLocked(b, a, &Edge{Context: context, Obligation: ob})
}

// RestoreEdge installs a single directed edge from a snapshot record,
// clamping its numeric state into bounds. Unlike AddRelationalUnit it does
// not touch the reverse direction; it exists so persistence and import
// layers can rebuild meshes whose edge pairs have diverged.
func (m *Mesh) RestoreEdge(rec EdgeRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setEdgeLocked(rec.Source, rec.Target, &Edge{
		Context:    rec.Context,
		Obligation: clamp(rec.Obligation, ObligationMin, ObligationMax),
		Soliton:    clamp(rec.Soliton, SolitonMin, SolitonMax),
	})
}

func (m *Mesh) setEdgeLocked(source, target string, e *Edge) {
	targets, ok := m.edges[source]
	if !ok {
		targets = make(map[string]*Edge)
		m.edges[source] = targets
	}
	targets[target] = e
}

// RemoveUnit deletes both directed edges between a and b. Absent edges are
// a no-op. All remaining edges are untouched.
func (m *Mesh) RemoveUnit(a, b string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeEdgeLocked(a, b)
	m.removeEdgeLocked(b, a)
}

// RemoveAgent deletes every edge incident to the agent, in either
// direction. Absent agents are a no-op.
func (m *Mesh) RemoveAgent(agent string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.edges, agent)
	for source, targets := range m.edges {
		delete(targets, agent)
		if len(targets) == 0 {
			delete(m.edges, source)
		}
	}
}

func (m *Mesh) removeEdgeLocked(source, target string) {
	targets, ok := m.edges[source]
	if !ok {
		return
	}
	delete(targets, target)
	if len(targets) == 0 {
		delete(m.edges, source)
	}
}

// GetEdge returns a copy of the directed edge from source to target, and
// whether it exists.
func (m *Mesh) GetEdge(source, target string) (Edge, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.edges[source][target]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// HasEdge reports whether a directed edge from source to target exists.
func (m *Mesh) HasEdge(source, target string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.edges[source][target]
	return ok
}

// HasAgent reports whether the agent is referenced by at least one edge.
func (m *Mesh) HasAgent(agent string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.edges[agent]; ok {
		return true
	}
	for _, targets := range m.edges {
		if _, ok := targets[agent]; ok {
			return true
		}
	}
	return false
}

// NeighborsOf returns all agents reachable via an outgoing edge from the
// agent, sorted for deterministic traversal. An absent agent yields an
// empty slice, not an error.
func (m *Mesh) NeighborsOf(agent string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	targets := m.edges[agent]
	neighbors := make([]string, 0, len(targets))
	for target := range targets {
		neighbors = append(neighbors, target)
	}
	sort.Strings(neighbors)
	return neighbors
}

// Agents returns every agent referenced by at least one edge, in either
// direction, sorted.
func (m *Mesh) Agents() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for source, targets := range m.edges {
		seen[source] = true
		for target := range targets {
			seen[target] = true
		}
	}

	agents := make([]string, 0, len(seen))
	for agent := range seen {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	return agents
}

// EdgeCount returns the number of directed edges.
func (m *Mesh) EdgeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, targets := range m.edges {
		n += len(targets)
	}
	return n
}

// Edges returns a snapshot of every directed edge, sorted by (source,
// target) for deterministic iteration.
func (m *Mesh) Edges() []EdgeRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]EdgeRecord, 0, 16)
	for source, targets := range m.edges {
		for target, e := range targets {
			records = append(records, EdgeRecord{
				Source:     source,
				Target:     target,
				Context:    e.Context,
				Obligation: e.Obligation,
				Soliton:    e.Soliton,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Source != records[j].Source {
			return records[i].Source < records[j].Source
		}
		return records[i].Target < records[j].Target
	})
	return records
}

// SetObligation writes a clamped obligation value to the directed edge.
// Missing edges are a soft no-op. Intended for the dynamics engine; most
// callers should go through AddRelationalUnit and the update rules.
func (m *Mesh) SetObligation(source, target string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.edges[source][target]; ok {
		e.Obligation = clamp(v, ObligationMin, ObligationMax)
	}
}

// SetSoliton writes a clamped soliton value to the directed edge. Missing
// edges are a soft no-op.
func (m *Mesh) SetSoliton(source, target string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.edges[source][target]; ok {
		e.Soliton = clamp(v, SolitonMin, SolitonMax)
	}
}

// clamp restricts v to [min, max]. NaN and infinities collapse to min so a
// bad numeric input can never corrupt stored state.
func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
