package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/diagnostics"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show mesh health diagnostics",
		Long: `Display reciprocity and soliton energy aggregates for the mesh.

The reciprocity score is the mean obligation over reciprocal pairs;
soliton stats cover every directed edge. Both queries are read-only.

Examples:
  relmesh stats
  relmesh stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			m, err := readMesh(root)
			if err != nil {
				return err
			}

			reciprocity := diagnostics.ReciprocityScore(m)
			soliton := diagnostics.SolitonStats(m)
			agents := m.Agents()

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"agents":      len(agents),
					"edges":       m.EdgeCount(),
					"reciprocity": reciprocity,
					"soliton":     soliton,
				})
				return nil
			}

			if len(agents) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Mesh is empty. Use 'relmesh link' to create relational units.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Mesh: %d agents, %d directed edges\n\n", len(agents), m.EdgeCount())
			fmt.Fprintf(cmd.OutOrStdout(), "Reciprocity score: %.4f\n", reciprocity)
			fmt.Fprintf(cmd.OutOrStdout(), "Soliton energy:\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  mean:  %.4f\n", soliton.Mean)
			fmt.Fprintf(cmd.OutOrStdout(), "  max:   %.4f\n", soliton.Max)
			fmt.Fprintf(cmd.OutOrStdout(), "  total: %.4f\n", soliton.Total)

			return nil
		},
	}

	return cmd
}
