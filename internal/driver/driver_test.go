package driver

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/sovmesh/relmesh/internal/config"
	"github.com/sovmesh/relmesh/internal/logging"
	"github.com/sovmesh/relmesh/internal/mesh"
)

func newTestDriver(t *testing.T, cfg *config.Config) (*Driver, *mesh.Mesh) {
	t.Helper()
	m := mesh.New()
	m.AddRelationalUnit("hunter", "caribou", "hunt", 0.5)
	m.AddRelationalUnit("hunter", "land", "stewardship", 0.4)

	logger := logging.NewLogger("info", io.Discard)
	return New(m, cfg, logger, nil), m
}

func TestStep_ConfiguredSource(t *testing.T) {
	cfg := config.Default()
	cfg.Driver.Source = "hunter"
	d, m := newTestDriver(t, cfg)

	report := d.Step()

	if report.PairsPulsed != 2 {
		t.Errorf("PairsPulsed = %d, want 2", report.PairsPulsed)
	}
	if report.PairsDebated != 2 {
		t.Errorf("PairsDebated = %d, want 2", report.PairsDebated)
	}
	if report.ID == "" {
		t.Error("expected non-empty report ID")
	}
	if report.Cycle != 0 {
		t.Errorf("Cycle = %d, want 0", report.Cycle)
	}
	if report.Soliton.Edges != m.EdgeCount() {
		t.Errorf("Soliton.Edges = %d, want %d", report.Soliton.Edges, m.EdgeCount())
	}
}

func TestStep_AllAgentsWhenSourceEmpty(t *testing.T) {
	cfg := config.Default()
	d, _ := newTestDriver(t, cfg)

	report := d.Step()

	// hunter pulses both units; caribou and land each pulse their single
	// unit with hunter again: 2 + 1 + 1.
	if report.PairsPulsed != 4 {
		t.Errorf("PairsPulsed = %d, want 4", report.PairsPulsed)
	}
	if report.PairsDebated != 4 {
		t.Errorf("PairsDebated = %d, want 4", report.PairsDebated)
	}
}

func TestStep_ReportsDiagnostics(t *testing.T) {
	cfg := config.Default()
	cfg.Driver.Source = "hunter"
	d, _ := newTestDriver(t, cfg)

	report := d.Step()

	if report.Reciprocity <= 0 || report.Reciprocity > 1 {
		t.Errorf("Reciprocity = %f, want in (0, 1]", report.Reciprocity)
	}
	if math.IsNaN(report.Soliton.Mean) {
		t.Error("Soliton.Mean is NaN")
	}
}

func TestStep_CycleCounterAdvances(t *testing.T) {
	cfg := config.Default()
	d, _ := newTestDriver(t, cfg)

	first := d.Step()
	second := d.Step()

	if first.Cycle != 0 || second.Cycle != 1 {
		t.Errorf("cycles = %d, %d; want 0, 1", first.Cycle, second.Cycle)
	}
	if first.ID == second.ID {
		t.Error("expected distinct report IDs per cycle")
	}
}

func TestLatestReport(t *testing.T) {
	cfg := config.Default()
	d, _ := newTestDriver(t, cfg)

	if _, ok := d.LatestReport(); ok {
		t.Error("expected no report before the first cycle")
	}

	want := d.Step()
	got, ok := d.LatestReport()
	if !ok {
		t.Fatal("expected a report after Step")
	}
	if got.ID != want.ID {
		t.Errorf("LatestReport ID = %s, want %s", got.ID, want.ID)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Driver.Interval = 5 * time.Millisecond
	d, _ := newTestDriver(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	// Let a few cycles land, then cancel.
	time.Sleep(40 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancel")
	}

	if _, ok := d.LatestReport(); !ok {
		t.Error("expected at least one completed cycle")
	}
}
