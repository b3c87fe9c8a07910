package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/palette"
)

func TestKineticEnergy(t *testing.T) {
	ps := []field.Particle{{VX: 3, VY: 4}, {VX: -1, VY: 0}}
	if got := KineticEnergy(ps); got != 13 {
		t.Errorf("expected 13, got %f", got)
	}
	if got := MeanSpeed(ps); got != 3 {
		t.Errorf("expected mean speed 3, got %f", got)
	}
	if MeanSpeed(nil) != 0 {
		t.Error("expected zero mean speed for empty field")
	}
}

func TestEnergyConservedByReflection(t *testing.T) {
	f := field.New(field.DefaultConfig(), field.NewRand(5))
	f.Initialize(40, 120, 80, palette.Default())

	drift := NewEnergyDrift()
	for i := 0; i < 2000; i++ {
		drift.Observe(NewSample(uint64(i), f, 120, 80))
		f.Step(120, 80)
	}
	if drift.Value() > 1e-9 {
		t.Errorf("expected no energy drift, got %e", drift.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy()
	m.Observe(Sample{Particles: []field.Particle{{VX: 1, VY: 1}}})
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEdgesAverage(t *testing.T) {
	m := NewEdges()
	m.Observe(Sample{Edges: 2})
	m.Observe(Sample{Edges: 4})
	if m.Value() != 3 {
		t.Errorf("expected 3, got %f", m.Value())
	}
}

func TestEscapes(t *testing.T) {
	m := NewEscapes()
	m.Observe(Sample{
		Particles: []field.Particle{{X: 150, Y: 10}, {X: 10, Y: 10}, {X: -1, Y: 5}},
		Width:     100,
		Height:    100,
	})
	if m.Value() != 2 {
		t.Errorf("expected 2 escapes, got %f", m.Value())
	}
}

func TestSeriesCapacity(t *testing.T) {
	s := NewSeries(3, Defaults()...)
	for i := 0; i < 5; i++ {
		s.Observe(Sample{Frame: uint64(i), Edges: i, Particles: []field.Particle{{VX: 1}}})
	}
	pts := s.Points()
	if len(pts) != 3 || pts[0].Frame != 2 {
		t.Fatalf("expected last 3 frames, got %+v", pts)
	}
	if hist := s.EdgeHistory(); hist[2] != 4 {
		t.Errorf("expected last edge count 4, got %f", hist[2])
	}
	sum := s.Summary()
	if math.Abs(sum["edges"]-2) > 1e-9 {
		t.Errorf("expected mean edges 2 over all frames, got %f", sum["edges"])
	}
	if _, ok := sum["energy_drift"]; !ok {
		t.Error("expected energy_drift in summary")
	}

	s.Reset()
	if len(s.Points()) != 0 || s.Summary()["edges"] != 0 {
		t.Error("expected reset series")
	}
}
