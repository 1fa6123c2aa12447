package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/mesh"
)

func newUnlinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink <agent-a> [agent-b]",
		Short: "Remove a relational unit or an entire agent",
		Long: `Remove relational state from the mesh.

With two agents, removes both directed edges of that pair. With a single
agent, removes the agent and every unit it participates in.

Examples:
  relmesh unlink hunter caribou
  relmesh unlink caribou`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			var result map[string]interface{}
			err := withMesh(root, func(m *mesh.Mesh) error {
				if len(args) == 2 {
					a, b := args[0], args[1]
					existed := m.HasEdge(a, b) || m.HasEdge(b, a)
					m.RemoveUnit(a, b)
					result = map[string]interface{}{
						"status":  "unlinked",
						"a":       a,
						"b":       b,
						"existed": existed,
					}
					return nil
				}

				agent := args[0]
				existed := m.HasAgent(agent)
				m.RemoveAgent(agent)
				result = map[string]interface{}{
					"status":  "removed",
					"agent":   agent,
					"existed": existed,
				}
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			} else if len(args) == 2 {
				fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s <-> %s\n", args[0], args[1])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed agent %s and all its units\n", args[0])
			}

			return nil
		},
	}

	return cmd
}
