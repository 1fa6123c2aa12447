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

func newPulseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pulse <source>",
		Short: "Inject a soliton energy pulse at an agent",
		Long: `Run one soliton propagation from the source agent.

Every reciprocal neighbor receives the same bounded energy nudge,
written symmetrically to both directions of the pair. Neighbors
without a reciprocal edge are skipped.

Example:
  relmesh pulse hunter --strength 2.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			source := args[0]

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			strength := cfg.Dynamics.Strength
			if cmd.Flags().Changed("strength") {
				strength, _ = cmd.Flags().GetFloat64("strength")
			}

			var pairs int
			var stats diagnostics.Stats
			err = withMesh(root, func(m *mesh.Mesh) error {
				engine := dynamics.NewEngine(m, dynamics.Config{
					PulseFrequency:    cfg.Dynamics.PulseFrequency,
					ReinforcementGain: cfg.Dynamics.ReinforcementGain,
				})
				pairs = engine.PropagateSoliton(source, strength)
				stats = diagnostics.SolitonStats(m)
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status":   "pulsed",
					"source":   source,
					"strength": strength,
					"pairs":    pairs,
					"soliton":  stats,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Pulsed %s (strength %.2f): %d pairs reached\n", source, strength, pairs)
				fmt.Fprintf(cmd.OutOrStdout(), "Soliton: mean=%.4f max=%.4f total=%.4f across %d edges\n",
					stats.Mean, stats.Max, stats.Total, stats.Edges)
			}

			return nil
		},
	}

	cmd.Flags().Float64("strength", 1.0, "Pulse strength (default from config)")

	return cmd
}
