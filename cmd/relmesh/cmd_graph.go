package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Serialize the mesh as DOT or JSON",
		Long: `Write a text serialization of the mesh to stdout.

DOT output colors edges by soliton level; pipe it to Graphviz to draw.

Examples:
  relmesh graph --format dot | dot -Tsvg -o mesh.svg
  relmesh graph --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			format, _ := cmd.Flags().GetString("format")

			m, err := readMesh(root)
			if err != nil {
				return err
			}

			switch visualization.Format(format) {
			case visualization.FormatDOT:
				fmt.Fprint(cmd.OutOrStdout(), visualization.RenderDOT(m))
			case visualization.FormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(visualization.RenderJSON(m))
			default:
				return fmt.Errorf("unknown format: %s (valid: dot, json)", format)
			}

			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format (dot, json)")

	return cmd
}
