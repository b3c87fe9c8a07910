package surface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sourcespace/internal/field"
)

// ErrUnavailable is returned by an AcquireFunc when no drawing context
// can be obtained for the requested size.
var ErrUnavailable = errors.New("surface: drawing context unavailable")

// Drawable is a surface the controller can resize in place.
type Drawable interface {
	field.Surface
	Resize(cols, rows int)
}

// AcquireFunc obtains a drawing context sized to cols x rows cells.
type AcquireFunc func(cols, rows int) (Drawable, error)

// CanvasAcquirer returns an AcquireFunc producing Braille canvases.
// Zero-sized viewports are reported as ErrUnavailable.
func CanvasAcquirer(opts ...CanvasOption) AcquireFunc {
	var o canvasOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(cols, rows int) (Drawable, error) {
		if cols <= 0 || rows <= 0 {
			return nil, fmt.Errorf("%w: %dx%d", ErrUnavailable, cols, rows)
		}
		c := NewCanvas(cols, rows, o.background)
		if o.onCanvas != nil {
			o.onCanvas(c)
		}
		return c, nil
	}
}

// Controller owns the drawing surface and its dimensions. Dimensions are
// in cells; the field works in pixels (2x4 per cell).
type Controller struct {
	mu         sync.RWMutex
	cols, rows int
	surface    Drawable
	degraded   bool
	released   bool
	logger     *log.Logger
}

// NewController sizes a surface to the viewport. If acquire fails the
// controller degrades to a Nop surface and keeps tracking dimensions.
func NewController(cols, rows int, acquire AcquireFunc, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{cols: cols, rows: rows, logger: logger}

	var s Drawable
	var err error
	if acquire == nil {
		err = ErrUnavailable
	} else {
		s, err = acquire(cols, rows)
	}
	if err != nil || s == nil {
		logger.Warn("surface degraded to no-op", "cols", cols, "rows", rows, "err", err)
		c.surface, c.degraded = Nop{}, true
	} else {
		c.surface = s
	}
	return c
}

// Draw runs fn with the current surface and its pixel size while holding
// the controller lock, so Resize and Release wait for the frame to finish.
// fn must not call back into the controller.
func (c *Controller) Draw(fn func(s field.Surface, width, height float64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.surface, float64(c.cols*2), float64(c.rows*4))
}

// Size returns the surface size in pixels.
func (c *Controller) Size() (float64, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float64(c.cols * 2), float64(c.rows * 4)
}

// Cells returns the surface size in terminal cells.
func (c *Controller) Cells() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cols, c.rows
}

// Degraded reports whether drawing is a no-op.
func (c *Controller) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}

// Released reports whether Release has been called.
func (c *Controller) Released() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.released
}

// Resize records new viewport dimensions. It reports false when the
// notification is ignored: identical size, negative size, or a
// controller that has already been released.
func (c *Controller) Resize(cols, rows int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		c.logger.Debug("resize after release ignored", "cols", cols, "rows", rows)
		return false
	}
	if cols < 0 || rows < 0 || (cols == c.cols && rows == c.rows) {
		return false
	}
	c.cols, c.rows = cols, rows
	c.surface.Resize(cols, rows)
	return true
}

// Release detaches the surface. It is idempotent.
func (c *Controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	c.surface = Nop{}
}
