package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/palette"
	"github.com/san-kum/sourcespace/internal/surface"
)

// FieldToSVG draws the particles of f as vector shapes on a width x height
// image with the theme background. Edges use the first particle's colour
// at the field's edge alpha, like the live renderer.
func FieldToSVG(f *field.Field, theme palette.Theme, width, height float64) string {
	var sb strings.Builder
	svg := &svgSurface{sb: &sb}

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background))

	f.Render(svg)

	sb.WriteString("</svg>\n")
	return sb.String()
}

// svgSurface writes draw calls as SVG elements.
type svgSurface struct {
	sb *strings.Builder
}

func (s *svgSurface) Clear() {}

func (s *svgSurface) FillCircle(x, y, r float64, c lipgloss.Color, alpha float64) {
	s.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, x, y, r, c, alpha))
}

func (s *svgSurface) Line(x0, y0, x1, y1 float64, c lipgloss.Color, alpha float64) {
	s.sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.2f"/>
`, x0, y0, x1, y1, c, alpha))
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit pixel in
// its cell's blended colour.
func CanvasToSVG(canvas *surface.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, canvas.Background()))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			clr, lit := canvas.CellColor(row, col)
			if !lit {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.Lit(x, y) {
						continue
					}
					cx := float64(x)*scale + scale/2
					cy := float64(y)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, clr))
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
