package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/mesh"
)

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <agent-a> <agent-b>",
		Short: "Create or replace a reciprocal relational unit",
		Long: `Create a reciprocal relational unit between two agents.

Both directed edges are created with the given context and obligation;
soliton energy starts at zero. Linking an existing pair replaces its
state entirely.

Example:
  relmesh link hunter caribou --context hunt --obligation 0.9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			context, _ := cmd.Flags().GetString("context")
			obligation, _ := cmd.Flags().GetFloat64("obligation")
			a, b := args[0], args[1]

			if a == b {
				return fmt.Errorf("cannot link an agent to itself: %s", a)
			}

			var created mesh.Edge
			err := withMesh(root, func(m *mesh.Mesh) error {
				m.AddRelationalUnit(a, b, context, obligation)
				created, _ = m.GetEdge(a, b)
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status":     "linked",
					"a":          a,
					"b":          b,
					"context":    created.Context,
					"obligation": created.Obligation,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Linked %s <-> %s [%s] obligation=%.2f\n",
					a, b, created.Context, created.Obligation)
			}

			return nil
		},
	}

	cmd.Flags().String("context", "", "Relationship context (required)")
	cmd.Flags().Float64("obligation", 1.0, "Initial obligation weight (clamped to [0, 1])")
	cmd.MarkFlagRequired("context")

	return cmd
}
