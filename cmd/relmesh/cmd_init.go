package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/store"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mesh tracking in the current directory",
		Long: `Initialize relmesh state in the project root.

Creates the .relmesh/ directory, a commented config.yaml, and an empty
snapshot database.

Examples:
  relmesh init
  relmesh init --root /path/to/project`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			dir := filepath.Join(root, config.Dir)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s directory: %w", config.Dir, err)
			}

			configPath := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				template := `# Relational mesh configuration
# created: %s

dynamics:
  pulse_frequency: 79.79
  reinforcement_gain: 0.05
  strength: 1.0
  input_strength: 1.0
  stubbornness: 0.3

driver:
  interval: 12s
  # source: hunter    # pulse a single agent instead of all

logging:
  level: info    # info, debug, or trace
`
				content := fmt.Sprintf(template, time.Now().Format(time.RFC3339))
				if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
					return fmt.Errorf("failed to create config.yaml: %w", err)
				}
			}

			// Opening the store creates the snapshot database and schema.
			s, err := store.Open(root)
			if err != nil {
				return fmt.Errorf("failed to create snapshot database: %w", err)
			}
			s.Close()

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"status": "initialized",
					"path":   dir,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s/ in %s\n", config.Dir, root)
			}

			return nil
		},
	}

	return cmd
}
