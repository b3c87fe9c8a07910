package backdrop

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/frame"
	"github.com/san-kum/sourcespace/internal/palette"
	"github.com/san-kum/sourcespace/internal/stars"
	"github.com/san-kum/sourcespace/internal/surface"
)

var (
	ErrNotMounted     = errors.New("backdrop: scene not mounted")
	ErrAlreadyMounted = errors.New("backdrop: scene already mounted")
)

// Phase of a Scene.
type Phase int

const (
	Uninitialized Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "uninitialized"
}

// Options configures a Scene. Zero values fall back to defaults.
type Options struct {
	Field    field.Config
	Stars    int
	FPS      int
	Source   frame.Source
	Viewport func() (cols, rows int)

	// NewRand returns the generator for stream n: stream 0 feeds the
	// star layer, stream k the k-th mounted field. Nil gives fresh
	// randomness everywhere.
	NewRand func(n int) *rand.Rand

	// Acquire overrides the Braille canvas acquirer.
	Acquire func(t palette.Theme) surface.AcquireFunc

	// OnFrame runs at the end of every drawn frame, on the frame
	// goroutine. It must not call back into the Scene.
	OnFrame func(f *field.Field, frames uint64)

	Logger *log.Logger
}

// triple is everything owned by one Active period.
type triple struct {
	ctrl   *surface.Controller
	field  *field.Field
	driver *frame.Driver
	canvas *surface.Canvas
}

// Scene is safe for concurrent use.
type Scene struct {
	mu     sync.Mutex
	opts   Options
	phase  Phase
	theme  palette.Theme
	cur    *triple
	stars  *stars.Field
	mounts int
	logger *log.Logger
}

func New(opts Options) *Scene {
	if opts.FPS <= 0 {
		opts.FPS = frame.DefaultFPS
	}
	if opts.Field == (field.Config{}) {
		opts.Field = field.DefaultConfig()
	}
	if opts.Source == nil {
		opts.Source = frame.NewTimer(opts.FPS)
	}
	if opts.Viewport == nil {
		opts.Viewport = func() (int, int) { return 0, 0 }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	var starRng *rand.Rand
	if opts.NewRand != nil {
		starRng = opts.NewRand(0)
	}
	return &Scene{
		opts:   opts,
		stars:  stars.New(opts.Stars, opts.FPS, starRng),
		logger: logger.WithPrefix("backdrop"),
	}
}

// Mount activates the scene with theme. Unknown themes use the default
// palette.
func (s *Scene) Mount(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Active {
		return ErrAlreadyMounted
	}
	s.stars.Reset()
	s.activate(theme)
	return nil
}

// Unmount tears the scene down. It is a no-op when not mounted.
func (s *Scene) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Active {
		return
	}
	s.teardown()
	s.phase = Uninitialized
	s.logger.Info("unmounted", "theme", s.theme.Key)
}

// SetTheme replaces the active triple with one built for theme. Particle
// state is not carried over. Re-selecting the active theme is a no-op.
func (s *Scene) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Active {
		return ErrNotMounted
	}
	next := palette.Lookup(theme)
	if next.Key == s.theme.Key {
		return nil
	}
	s.logger.Info("theme change", "from", s.theme.Key, "to", next.Key)
	s.teardown()
	s.activate(theme)
	return nil
}

// Resize forwards a viewport change to the active controller. It reports
// false when the scene is not mounted or the size is unchanged.
func (s *Scene) Resize(cols, rows int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Active {
		s.logger.Debug("resize while unmounted ignored", "cols", cols, "rows", rows)
		return false
	}
	return s.cur.ctrl.Resize(cols, rows)
}

func (s *Scene) activate(key string) {
	if !palette.Known(key) {
		s.logger.Debug("unknown theme, using default", "theme", key, "default", palette.DefaultKey)
	}
	s.theme = palette.Lookup(key)
	s.stars.SetTheme(s.theme.Key)

	t := &triple{}
	acquire := surface.CanvasAcquirer(
		surface.WithBackground(s.theme.Background),
		surface.OnCanvas(func(c *surface.Canvas) { t.canvas = c }),
	)
	if s.opts.Acquire != nil {
		acquire = s.opts.Acquire(s.theme)
	}
	cols, rows := s.opts.Viewport()
	t.ctrl = surface.NewController(cols, rows, acquire, s.logger)

	s.mounts++
	var rng *rand.Rand
	if s.opts.NewRand != nil {
		rng = s.opts.NewRand(s.mounts)
	}

	t.field = field.New(s.opts.Field, rng)
	w, h := t.ctrl.Size()
	t.field.Initialize(s.opts.Field.Count, w, h, s.theme.Colors)

	ctrl, fld, st, onFrame := t.ctrl, t.field, s.stars, s.opts.OnFrame
	var drawn uint64
	t.driver = frame.NewDriver(s.opts.Source,
		func() {
			w, h := ctrl.Size()
			fld.Step(w, h)
			st.Tick()
		},
		func() {
			ctrl.Draw(func(surf field.Surface, w, h float64) {
				surf.Clear()
				st.Draw(surf, w, h)
				fld.Render(surf)
			})
			drawn++
			if onFrame != nil {
				onFrame(fld, drawn)
			}
		},
	)
	t.driver.Start()

	s.cur = t
	s.phase = Active
	s.logger.Info("mounted", "theme", s.theme.Key, "cols", cols, "rows", rows, "particles", fld.Len())
}

func (s *Scene) teardown() {
	if s.cur == nil {
		return
	}
	s.cur.driver.Cancel()
	s.cur.ctrl.Release()
	s.cur = nil
}

func (s *Scene) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Theme returns the active theme, or the last one after Unmount.
func (s *Scene) Theme() palette.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Field returns the active particle field, or nil.
func (s *Scene) Field() *field.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	return s.cur.field
}

// Controller returns the active surface controller, or nil.
func (s *Scene) Controller() *surface.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	return s.cur.ctrl
}

// Driver returns the active frame driver, or nil.
func (s *Scene) Driver() *frame.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	return s.cur.driver
}

// Canvas returns the active Braille canvas, or nil when the surface is
// degraded or overridden. Read it only from the frame goroutine.
func (s *Scene) Canvas() *surface.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.ctrl.Degraded() {
		return nil
	}
	return s.cur.canvas
}

// Stars returns the star layer. Its methods are safe to call while
// frames run.
func (s *Scene) Stars() *stars.Field {
	return s.stars
}
