// Package driver runs the mesh dynamics on a fixed interval. It owns no
// mesh state; it repeatedly applies the two update rules and keeps the
// most recent cycle report available for inspection.
package driver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/diagnostics"
	"github.com/sovmesh/relmesh/internal/dynamics"
	"github.com/sovmesh/relmesh/internal/logging"
	"github.com/sovmesh/relmesh/internal/mesh"
)

// CycleReport summarizes one completed update cycle.
type CycleReport struct {
	ID           string            `json:"id"`
	Cycle        int               `json:"cycle"`
	At           time.Time         `json:"at"`
	PairsPulsed  int               `json:"pairs_pulsed"`
	PairsDebated int               `json:"pairs_debated"`
	Reciprocity  float64           `json:"reciprocity"`
	Soliton      diagnostics.Stats `json:"soliton"`
}

// Driver applies the dynamics rules to a mesh on a fixed interval.
type Driver struct {
	mesh   *mesh.Mesh
	engine *dynamics.Engine
	cfg    *config.Config
	logger *slog.Logger
	pulses *logging.PulseLogger

	mu     sync.Mutex
	cycle  int
	latest *CycleReport
}

// New creates a driver over the given mesh. logger must be non-nil;
// pulses may be nil to disable tracing.
func New(m *mesh.Mesh, cfg *config.Config, logger *slog.Logger, pulses *logging.PulseLogger) *Driver {
	engine := dynamics.NewEngine(m, dynamics.Config{
		PulseFrequency:    cfg.Dynamics.PulseFrequency,
		ReinforcementGain: cfg.Dynamics.ReinforcementGain,
	})
	return &Driver{
		mesh:   m,
		engine: engine,
		cfg:    cfg,
		logger: logger,
		pulses: pulses,
	}
}

// Step runs one update cycle synchronously and returns its report.
// The cycle pulses and debates the configured source agent, or every
// agent in sorted order when no source is configured.
func (d *Driver) Step() CycleReport {
	d.mu.Lock()
	defer d.mu.Unlock()

	sources := []string{d.cfg.Driver.Source}
	if d.cfg.Driver.Source == "" {
		sources = d.mesh.Agents()
	}

	report := CycleReport{
		ID:    uuid.NewString(),
		Cycle: d.cycle,
		At:    time.Now().UTC(),
	}
	for _, source := range sources {
		report.PairsPulsed += d.engine.PropagateSoliton(source, d.cfg.Dynamics.Strength)
		report.PairsDebated += d.engine.DebateUpdate(source, d.cfg.Dynamics.InputStrength, d.cfg.Dynamics.Stubbornness)
	}
	report.Reciprocity = diagnostics.ReciprocityScore(d.mesh)
	report.Soliton = diagnostics.SolitonStats(d.mesh)

	d.cycle++
	d.latest = &report

	d.logger.Debug("cycle complete",
		"cycle", report.Cycle,
		"pairs_pulsed", report.PairsPulsed,
		"pairs_debated", report.PairsDebated,
		"reciprocity", report.Reciprocity,
	)
	d.pulses.Log(map[string]any{
		"event":         "cycle",
		"id":            report.ID,
		"cycle":         report.Cycle,
		"pairs_pulsed":  report.PairsPulsed,
		"pairs_debated": report.PairsDebated,
		"reciprocity":   report.Reciprocity,
		"soliton_total": report.Soliton.Total,
	})

	return report
}

// LatestReport returns the most recent cycle report, or false if no cycle
// has completed yet.
func (d *Driver) LatestReport() (CycleReport, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.latest == nil {
		return CycleReport{}, false
	}
	return *d.latest, true
}

// Run executes cycles on the configured interval until ctx is canceled.
// The first cycle runs after one full interval, not immediately.
func (d *Driver) Run(ctx context.Context) {
	d.logger.Info("driver started",
		"interval", d.cfg.Driver.Interval,
		"source", d.cfg.Driver.Source,
	)

	ticker := time.NewTicker(d.cfg.Driver.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("driver stopped", "cycles", d.cycleCount())
			return
		case <-ticker.C:
			d.Step()
		}
	}
}

func (d *Driver) cycleCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cycle
}
