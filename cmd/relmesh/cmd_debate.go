package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/diagnostics"
	"github.com/sovmesh/relmesh/internal/dynamics"
	"github.com/sovmesh/relmesh/internal/mesh"
)

func newDebateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debate <agent>",
		Short: "Run one consensus round at an agent",
		Long: `Blend the agent's obligations toward an input signal.

Each reciprocal pair incident to the agent is updated with the
stubbornness-weighted consensus rule and a small reinforcement bonus,
capped at the obligation ceiling. Higher stubbornness adopts the input
signal faster.

Example:
  relmesh debate hunter --input 1.0 --stubbornness 0.3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			agent := args[0]

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			input := cfg.Dynamics.InputStrength
			if cmd.Flags().Changed("input") {
				input, _ = cmd.Flags().GetFloat64("input")
			}
			stubbornness := cfg.Dynamics.Stubbornness
			if cmd.Flags().Changed("stubbornness") {
				stubbornness, _ = cmd.Flags().GetFloat64("stubbornness")
			}

			var pairs int
			var reciprocity float64
			err = withMesh(root, func(m *mesh.Mesh) error {
				engine := dynamics.NewEngine(m, dynamics.Config{
					PulseFrequency:    cfg.Dynamics.PulseFrequency,
					ReinforcementGain: cfg.Dynamics.ReinforcementGain,
				})
				pairs = engine.DebateUpdate(agent, input, stubbornness)
				reciprocity = diagnostics.ReciprocityScore(m)
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status":       "debated",
					"agent":        agent,
					"input":        input,
					"stubbornness": stubbornness,
					"pairs":        pairs,
					"reciprocity":  reciprocity,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Debated %s (input %.2f, stubbornness %.2f): %d pairs updated\n",
					agent, input, stubbornness, pairs)
				fmt.Fprintf(cmd.OutOrStdout(), "Reciprocity score: %.4f\n", reciprocity)
			}

			return nil
		},
	}

	cmd.Flags().Float64("input", 1.0, "Input signal strength (default from config)")
	cmd.Flags().Float64("stubbornness", 0.3, "Adoption weight in [0, 1] (default from config)")

	return cmd
}
