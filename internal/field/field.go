package field

import (
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sourcespace/internal/palette"
)

// Surface is the drawing target of a field. Implementations must be
// cheap and must not block.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c lipgloss.Color, alpha float64)
	Line(x0, y0, x1, y1 float64, c lipgloss.Color, alpha float64)
}

// Field owns the particle set. It is safe for use by one frame loop and
// concurrent readers of Snapshot/Edges.
type Field struct {
	mu        sync.Mutex
	cfg       Config
	rng       *rand.Rand
	particles []Particle
	finder    Finder
	edges     []Edge
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New creates an empty field. A nil rng gives the field its own freshly
// seeded generator.
func New(cfg Config, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{cfg: cfg, rng: rng, finder: cfg.finder(cfg.Count)}
}

// Config returns the field's configuration.
func (f *Field) Config() Config { return f.cfg }

// Initialize replaces all particles with count new ones placed uniformly
// in [0,width)×[0,height).
func (f *Field) Initialize(count int, width, height float64, p palette.Palette) {
	if count < 0 {
		count = 0
	}
	if len(p) == 0 {
		p = palette.Default()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.particles = make([]Particle, count)
	for i := range f.particles {
		f.particles[i] = Particle{
			X:      f.rng.Float64() * width,
			Y:      f.rng.Float64() * height,
			VX:     f.uniform(-f.cfg.Speed, f.cfg.Speed),
			VY:     f.uniform(-f.cfg.Speed, f.cfg.Speed),
			Radius: f.uniform(f.cfg.RadiusMin, f.cfg.RadiusMax),
			Color:  p[f.rng.IntN(len(p))],
			Alpha:  f.uniform(f.cfg.AlphaMin, f.cfg.AlphaMax),
		}
	}
	f.finder = f.cfg.finder(count)
	f.edges = f.edges[:0]
}

func (f *Field) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Step advances every particle by its velocity, reflecting off the edges
// of the current surface.
func (f *Field) Step(width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.particles {
		p := &f.particles[i]
		p.X, p.VX = reflect(p.X, p.VX, width)
		p.Y, p.VY = reflect(p.Y, p.VY, height)
	}
}

// Draw clears s and renders the field onto it.
func (f *Field) Draw(s Surface) {
	s.Clear()
	f.Render(s)
}

// Render paints particles and connection lines without clearing, so the
// field can be layered over other content.
func (f *Field) Render(s Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.particles {
		s.FillCircle(p.X, p.Y, p.Radius, p.Color, p.Alpha)
	}

	f.edges = f.finder.Pairs(f.particles, f.cfg.Threshold, f.edges[:0])
	for _, e := range f.edges {
		a, b := f.particles[e.I], f.particles[e.J]
		s.Line(a.X, a.Y, b.X, b.Y, a.Color, f.cfg.EdgeAlpha)
	}
}

// Edges returns the connected pairs for the current positions.
func (f *Field) Edges() []Edge {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finder.Pairs(f.particles, f.cfg.Threshold, nil)
}

// Snapshot returns a copy of the particles.
func (f *Field) Snapshot() []Particle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Len returns the particle count.
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles)
}
