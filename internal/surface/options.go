package surface

import "github.com/charmbracelet/lipgloss"

type canvasOptions struct {
	background lipgloss.Color
	onCanvas   func(*Canvas)
}

// CanvasOption configures CanvasAcquirer.
type CanvasOption func(*canvasOptions)

// WithBackground sets the colour dots are blended over.
func WithBackground(bg lipgloss.Color) CanvasOption {
	return func(o *canvasOptions) { o.background = bg }
}

// OnCanvas registers a callback receiving each acquired canvas.
func OnCanvas(fn func(*Canvas)) CanvasOption {
	return func(o *canvasOptions) { o.onCanvas = fn }
}
