// Package stars renders the twinkling star layer behind the particle field.
package stars

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/palette"
)

const (
	DefaultCount = 50

	minSize, maxSize         = 0.5, 1.5
	minDuration, maxDuration = 2 * time.Second, 5 * time.Second
	maxDelay                 = 3 * time.Second

	dimLevel    = 0.2
	brightLevel = 1.0
	damping     = 0.7
)

// Star is a fixed-position sprite. Position is a percentage of the
// viewport so it needs no resize handling.
type Star struct {
	X, Y     float64
	Size     float64
	Duration time.Duration
	Delay    time.Duration

	spring     harmonica.Spring
	brightness float64
	velocity   float64
}

// Brightness returns the current twinkle level.
func (s Star) Brightness() float64 {
	return math.Max(0, math.Min(1, s.brightness))
}

// target is the twinkle level the star is easing toward after elapsed.
func (s Star) target(elapsed time.Duration) float64 {
	if elapsed < s.Delay || s.Duration <= 0 {
		return dimLevel
	}
	phase := (elapsed - s.Delay) % s.Duration
	if phase < s.Duration/2 {
		return brightLevel
	}
	return dimLevel
}

// Field is the star layer for one theme. It is safe for concurrent use.
type Field struct {
	mu      sync.Mutex
	rng     *rand.Rand
	count   int
	fps     int
	theme   string
	color   lipgloss.Color
	stars   []Star
	elapsed time.Duration
}

// New returns an empty layer; call SetTheme to generate stars. A nil rng
// gives the layer its own seed.
func New(count, fps int, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if count < 0 {
		count = 0
	}
	if fps <= 0 {
		fps = 60
	}
	return &Field{rng: rng, count: count, fps: fps}
}

// SetTheme regenerates every star when key differs from the active theme.
// It reports whether the stars were replaced.
func (f *Field) SetTheme(key string) bool {
	key = palette.Normalize(key)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stars != nil && key == f.theme {
		return false
	}
	f.theme = key
	f.color = palette.Lookup(key).Star
	f.elapsed = 0
	f.stars = f.generate()
	return true
}

func (f *Field) generate() []Star {
	stars := make([]Star, f.count)
	for i := range stars {
		dur := minDuration + time.Duration(f.rng.Int64N(int64(maxDuration-minDuration)))
		omega := 4 * math.Pi / dur.Seconds()
		stars[i] = Star{
			X:          f.rng.Float64() * 100,
			Y:          f.rng.Float64() * 100,
			Size:       minSize + f.rng.Float64()*(maxSize-minSize),
			Duration:   dur,
			Delay:      time.Duration(f.rng.Int64N(int64(maxDelay))),
			spring:     harmonica.NewSpring(harmonica.FPS(f.fps), omega, damping),
			brightness: dimLevel,
		}
	}
	return stars
}

// Theme returns the active theme key.
func (f *Field) Theme() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theme
}

// Stars returns a copy of the current stars.
func (f *Field) Stars() []Star {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Tick advances the twinkle animation by one frame.
func (f *Field) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.elapsed += time.Second / time.Duration(f.fps)
	for i := range f.stars {
		s := &f.stars[i]
		s.brightness, s.velocity = s.spring.Update(s.brightness, s.velocity, s.target(f.elapsed))
	}
}

// Draw paints the stars onto s scaled to a width x height pixel surface.
func (f *Field) Draw(s field.Surface, width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.stars {
		s.FillCircle(st.X/100*width, st.Y/100*height, st.Size, f.color, st.Brightness())
	}
}
