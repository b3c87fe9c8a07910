package sim

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sourcespace/internal/config"
)

func testConfig(seed uint64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func quiet() *log.Logger { return log.New(io.Discard) }

func TestSimulatorRun(t *testing.T) {
	s := New(testConfig(5), quiet())
	res, err := s.Run(context.Background(), Options{Frames: 120, Cols: 60, Rows: 20})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(res.Points) != 120 {
		t.Errorf("expected 120 points, got %d", len(res.Points))
	}
	if res.Width != 120 || res.Height != 80 {
		t.Errorf("expected 120x80 pixels, got %.0fx%.0f", res.Width, res.Height)
	}
	if res.Theme.Key != "novaverse" {
		t.Errorf("expected novaverse, got %s", res.Theme.Key)
	}
	if res.Field.Len() != 30 {
		t.Errorf("expected 30 particles, got %d", res.Field.Len())
	}
	for _, p := range res.Points {
		if p.Escapes != 0 {
			t.Fatalf("frame %d: %d particles out of bounds", p.Frame, p.Escapes)
		}
	}
	if _, ok := res.Summary["energy_drift"]; !ok {
		t.Error("expected energy_drift in summary")
	}
	if res.Canvas == nil {
		t.Fatal("expected the last frame's canvas")
	}
	if cw, ch := res.Canvas.PixelSize(); float64(cw) != res.Width || float64(ch) != res.Height {
		t.Errorf("canvas %dx%d does not match %.0fx%.0f", cw, ch, res.Width, res.Height)
	}
	p := res.Field.Snapshot()[0]
	if !res.Canvas.Lit(int(p.X), int(p.Y)) {
		t.Error("expected the canvas to show the final particle positions")
	}
}

func TestSimulatorDeterministic(t *testing.T) {
	opts := Options{Frames: 50, Cols: 40, Rows: 12}
	a, err := New(testConfig(8), quiet()).Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testConfig(8), quiet()).Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	pa, pb := a.Field.Snapshot(), b.Field.Snapshot()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, pa[i], pb[i])
		}
	}
}

func TestSimulatorValidation(t *testing.T) {
	s := New(testConfig(1), quiet())

	tests := []struct {
		name string
		opts Options
	}{
		{"negative frames", Options{Frames: -1, Cols: 10, Rows: 10}},
		{"zero cols", Options{Frames: 1, Cols: 0, Rows: 10}},
		{"zero rows", Options{Frames: 1, Cols: 10, Rows: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.opts); !errors.Is(err, ErrInvalidRun) {
				t.Errorf("expected ErrInvalidRun, got %v", err)
			}
		})
	}

	bad := testConfig(1)
	bad.FPS = 0
	if _, err := New(bad, quiet()).Run(context.Background(), Options{Frames: 1, Cols: 1, Rows: 1}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(2), quiet()).Run(ctx, Options{Frames: 10, Cols: 10, Rows: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(testConfig(0), quiet(), 4, 0)
	results, err := e.Run(context.Background(), Options{Frames: 20, Cols: 30, Rows: 10})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != uint64(i+1) {
			t.Errorf("run %d: expected seed %d, got %d", i, i+1, r.Seed)
		}
		if len(r.Points) != 20 {
			t.Errorf("run %d: expected 20 points, got %d", i, len(r.Points))
		}
	}
}
