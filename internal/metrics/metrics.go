package metrics

import (
	"math"

	"github.com/san-kum/sourcespace/internal/field"
)

// Sample is one frame's view of a field.
type Sample struct {
	Frame     uint64
	Particles []field.Particle
	Edges     int
	Width     float64
	Height    float64
}

// NewSample captures the current state of f on a width x height surface.
func NewSample(frame uint64, f *field.Field, width, height float64) Sample {
	return Sample{
		Frame:     frame,
		Particles: f.Snapshot(),
		Edges:     len(f.Edges()),
		Width:     width,
		Height:    height,
	}
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// KineticEnergy returns Σ ½|v|² over all particles (unit mass).
func KineticEnergy(ps []field.Particle) float64 {
	e := 0.0
	for _, p := range ps {
		e += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return e
}

// MeanSpeed returns the average particle speed, or 0 for an empty field.
func MeanSpeed(ps []field.Particle) float64 {
	if len(ps) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range ps {
		sum += p.Speed()
	}
	return sum / float64(len(ps))
}

// OutOfBounds counts particles outside the surface, which only happens
// transiently after a shrink.
func OutOfBounds(ps []field.Particle, w, h float64) int {
	n := 0
	for _, p := range ps {
		if !p.InBounds(w, h) {
			n++
		}
	}
	return n
}

type Energy struct {
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(s Sample) {
	e.totalEnergy += KineticEnergy(s.Particles)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change in kinetic energy. Elastic
// reflection keeps it at zero up to rounding.
type EnergyDrift struct {
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s Sample) {
	energy := KineticEnergy(s.Particles)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Edges averages the number of connection lines per frame.
type Edges struct {
	samples int
	total   int
}

func NewEdges() *Edges { return &Edges{} }

func (e *Edges) Name() string { return "edges" }

func (e *Edges) Observe(s Sample) {
	e.total += s.Edges
	e.samples++
}

func (e *Edges) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.total) / float64(e.samples)
}

func (e *Edges) Reset() {
	e.total = 0
	e.samples = 0
}

// Escapes records the most particles seen outside the surface at once.
type Escapes struct {
	max int
}

func NewEscapes() *Escapes { return &Escapes{} }

func (e *Escapes) Name() string { return "escapes" }

func (e *Escapes) Observe(s Sample) {
	if n := OutOfBounds(s.Particles, s.Width, s.Height); n > e.max {
		e.max = n
	}
}

func (e *Escapes) Value() float64 { return float64(e.max) }

func (e *Escapes) Reset() { e.max = 0 }

// Defaults returns the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{NewEnergy(), NewEnergyDrift(), NewEdges(), NewEscapes()}
}
