// Package visualization serializes relational meshes to text formats.
// Output is plain DOT or JSON text; actual drawing is left to external
// tools.
package visualization

import (
	"fmt"
	"strings"

	"github.com/sovmesh/relmesh/internal/mesh"
)

// Format specifies the output format for mesh serialization.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Edge colors keyed by soliton level. Edges carrying energy at or above
// SolitonHighWater render in the hot color.
const (
	colorHigh = "#00ffcc"
	colorLow  = "#ff6b35"

	// SolitonHighWater is the soliton level at which an edge is drawn as
	// energized.
	SolitonHighWater = 1.0
)

// RenderDOT produces a Graphviz DOT representation of the mesh. Agents
// become nodes; every directed edge is rendered with its context as label
// and a color reflecting its soliton level.
func RenderDOT(m *mesh.Mesh) string {
	var b strings.Builder
	b.WriteString("digraph relmesh {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=ellipse, style=filled, fillcolor=lightgray, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, agent := range m.Agents() {
		b.WriteString(fmt.Sprintf("  %q;\n", agent))
	}
	b.WriteString("\n")

	for _, rec := range m.Edges() {
		color := colorLow
		if rec.Soliton >= SolitonHighWater {
			color = colorHigh
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [label=%q, color=%q, tooltip=\"obligation=%.2f soliton=%.2f\"];\n",
			rec.Source, rec.Target, rec.Context, color, rec.Obligation, rec.Soliton))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON-ready graph representation with agents and
// edges arrays.
func RenderJSON(m *mesh.Mesh) map[string]interface{} {
	agents := m.Agents()
	jsonAgents := make([]string, len(agents))
	copy(jsonAgents, agents)

	records := m.Edges()
	jsonEdges := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"source":     rec.Source,
			"target":     rec.Target,
			"context":    rec.Context,
			"obligation": rec.Obligation,
			"soliton":    rec.Soliton,
		})
	}

	return map[string]interface{}{
		"agents":      jsonAgents,
		"edges":       jsonEdges,
		"agent_count": len(jsonAgents),
		"edge_count":  len(jsonEdges),
	}
}
