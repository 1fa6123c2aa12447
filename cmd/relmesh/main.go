package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/mesh"
	"github.com/sovmesh/relmesh/internal/store"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "relmesh",
		Short: "Relational mesh - reciprocal obligation dynamics between agents",
		Long: `relmesh maintains a mesh of reciprocal relationships between agents.

Each relationship carries a bounded obligation weight and soliton energy.
Two update rules evolve the mesh: an aperiodic energy pulse and a
stubbornness-weighted consensus round. Diagnostics expose reciprocity
and energy aggregates without mutating state.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newLinkCmd(),
		newUnlinkCmd(),
		newPulseCmd(),
		newDebateCmd(),
		newStatsCmd(),
		newGraphCmd(),
		newDemoCmd(),
		newRunCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "relmesh version %s\n", version)
			}
		},
	}
}

// requireInit verifies the state directory exists.
func requireInit(root string) error {
	dir := filepath.Join(root, config.Dir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%s not initialized. Run 'relmesh init' first", config.Dir)
	}
	return nil
}

// withMesh loads the stored mesh, runs fn against it, and saves the
// result back. fn returning an error leaves the stored snapshot untouched.
func withMesh(root string, fn func(m *mesh.Mesh) error) error {
	if err := requireInit(root); err != nil {
		return err
	}

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

	if err := fn(m); err != nil {
		return err
	}

	return s.Save(ctx, m)
}

// readMesh loads the stored mesh without writing anything back.
func readMesh(root string) (*mesh.Mesh, error) {
	if err := requireInit(root); err != nil {
		return nil, err
	}

	s, err := store.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh store: %w", err)
	}
	defer s.Close()

	m, err := s.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	return m, nil
}
