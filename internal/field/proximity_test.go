package field

import (
	"testing"

	"github.com/san-kum/sourcespace/internal/palette"
)

func TestGridMatchesPairwise(t *testing.T) {
	for _, threshold := range []float64{10, 37.5, 100} {
		f := newSeeded(11)
		f.Initialize(300, 640, 360, palette.Default())
		ps := f.Snapshot()

		want := Pairwise{}.Pairs(ps, threshold, nil)
		got := NewGrid().Pairs(ps, threshold, nil)

		if len(got) != len(want) {
			t.Fatalf("threshold %.1f: grid found %d pairs, pairwise %d", threshold, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("threshold %.1f: pair %d differs: %+v vs %+v", threshold, i, got[i], want[i])
			}
		}
	}
}

func TestGridReuse(t *testing.T) {
	g := NewGrid()
	ps := []Particle{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 90, Y: 90}}
	first := g.Pairs(ps, 10, nil)
	second := g.Pairs(ps, 10, nil)
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("expected one pair on both calls, got %d and %d", len(first), len(second))
	}
}

func TestGridOutsideBounds(t *testing.T) {
	ps := []Particle{{X: -3, Y: -3}, {X: 3, Y: 3}, {X: 250, Y: -40}}
	want := Pairwise{}.Pairs(ps, 10, nil)
	got := NewGrid().Pairs(ps, 10, nil)
	if len(got) != len(want) || len(got) != 1 {
		t.Errorf("expected 1 pair across negative cells, got grid=%d pairwise=%d", len(got), len(want))
	}
}

func TestZeroThresholdConnectsNothing(t *testing.T) {
	ps := []Particle{{X: 1, Y: 1}, {X: 1, Y: 1}}
	if n := len(Pairwise{}.Pairs(ps, 0, nil)); n != 0 {
		t.Errorf("pairwise: expected no pairs, got %d", n)
	}
	if n := len(NewGrid().Pairs(ps, 0, nil)); n != 0 {
		t.Errorf("grid: expected no pairs, got %d", n)
	}
}

func BenchmarkPairwise(b *testing.B) {
	f := newSeeded(1)
	f.Initialize(500, 1280, 720, palette.Default())
	ps := f.Snapshot()
	var dst []Edge
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = Pairwise{}.Pairs(ps, DefaultThreshold, dst[:0])
	}
}

func BenchmarkGrid(b *testing.B) {
	f := newSeeded(1)
	f.Initialize(500, 1280, 720, palette.Default())
	ps := f.Snapshot()
	g := NewGrid()
	var dst []Edge
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = g.Pairs(ps, DefaultThreshold, dst[:0])
	}
}
