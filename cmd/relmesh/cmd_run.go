package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/driver"
	"github.com/sovmesh/relmesh/internal/logging"
	"github.com/sovmesh/relmesh/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the background update cycle until interrupted",
		Long: `Load the stored mesh and apply the dynamics rules on the configured
interval. On SIGINT or SIGTERM the loop stops and the mesh is saved
back to the snapshot database.

Configure the interval and source agent in .relmesh/config.yaml or via
RELMESH_DRIVER_INTERVAL / RELMESH_DRIVER_SOURCE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			if err := requireInit(root); err != nil {
				return err
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			pulses := logging.NewPulseLogger(filepath.Join(root, config.Dir), cfg.Logging.Level)
			defer pulses.Close()

			s, err := store.Open(root)
			if err != nil {
				return fmt.Errorf("failed to open mesh store: %w", err)
			}
			defer s.Close()

			ctx := context.Background()
			m, err := s.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load mesh: %w", err)
			}
			if m.EdgeCount() == 0 {
				logger.Warn("mesh is empty; cycles will be no-ops until units are linked")
			}

			d := driver.New(m, cfg, logger, pulses)

			runCtx, cancel := context.WithCancel(ctx)
			sigCh := make(chan os.Signal, 1)
			notifySignals(sigCh)
			go func() {
				<-sigCh
				cancel()
			}()

			d.Run(runCtx)

			if err := s.Save(ctx, m); err != nil {
				return fmt.Errorf("failed to save mesh on shutdown: %w", err)
			}
			logger.Info("mesh saved", "edges", m.EdgeCount())

			return nil
		},
	}

	return cmd
}
