// Package diagnostics provides read-only aggregate queries over a
// relational mesh, used by callers to observe system health. All queries
// are side-effect free and return defined zero values on empty meshes.
package diagnostics

import "github.com/sovmesh/relmesh/internal/mesh"

// Stats aggregates soliton energy across every directed edge.
type Stats struct {
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Total float64 `json:"total"`
	Edges int     `json:"edges"`
}

// ReciprocityScore returns the arithmetic mean obligation over every
// directed edge whose reciprocal edge also exists. A mesh with no
// reciprocal pairs scores 0.0 — mean-of-empty is defined away rather than
// surfaced as an error.
func ReciprocityScore(m *mesh.Mesh) float64 {
	var sum float64
	n := 0
	for _, rec := range m.Edges() {
		if m.HasEdge(rec.Target, rec.Source) {
			sum += rec.Obligation
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

// SolitonStats aggregates soliton energy over ALL directed edges,
// reciprocal or not. An empty mesh yields the zero Stats value.
func SolitonStats(m *mesh.Mesh) Stats {
	records := m.Edges()
	if len(records) == 0 {
		return Stats{}
	}

	stats := Stats{Edges: len(records)}
	for _, rec := range records {
		stats.Total += rec.Soliton
		if rec.Soliton > stats.Max {
			stats.Max = rec.Soliton
		}
	}
	stats.Mean = stats.Total / float64(len(records))
	return stats
}
