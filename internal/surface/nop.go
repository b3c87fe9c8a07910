package surface

import "github.com/charmbracelet/lipgloss"

// Nop discards all drawing. It stands in for a surface whose drawing
// context could not be acquired.
type Nop struct{}

func (Nop) Clear()                                                       {}
func (Nop) FillCircle(x, y, r float64, c lipgloss.Color, alpha float64)  {}
func (Nop) Line(x0, y0, x1, y1 float64, c lipgloss.Color, alpha float64) {}
func (Nop) Resize(w, h int)                                              {}
