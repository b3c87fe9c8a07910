package field

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Particle is one simulated point. Radius, Color and Alpha are fixed at
// creation; position and velocity change every step.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  lipgloss.Color
	Alpha  float64
}

// Speed returns the magnitude of the particle's velocity.
func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// InBounds reports whether the particle lies inside [0,w]×[0,h].
func (p Particle) InBounds(w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}

// reflect advances one axis by one tick. The velocity flips when the new
// position leaves [0,limit] while still heading outward. A particle that
// crossed the edge during this tick is mirrored back inside; one that was
// already outside (after a shrink) keeps its position and drifts back.
// The mirror trades a sub-pixel position correction for keeping every
// particle within [0,limit] after each step on a stable surface.
func reflect(pos, vel, limit float64) (float64, float64) {
	next := pos + vel
	switch {
	case next < 0 && vel < 0:
		vel = -vel
		if pos >= 0 {
			next = -next
		}
	case next > limit && vel > 0:
		vel = -vel
		if pos <= limit {
			next = 2*limit - next
		}
	}
	return next, vel
}
