package surface

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// ink is the strongest colour written into a cell this frame.
type ink struct {
	color lipgloss.Color
	alpha float64
}

// Canvas is a Braille pixel surface. Its pixel size is (Width*2) x
// (Height*4); each cell carries the colour of the most opaque dot drawn
// into it, blended over the background.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	ink        [][]ink
	background lipgloss.Color
	bg         colorful.Color
	blended    map[ink]lipgloss.Color
}

func NewCanvas(w, h int, background lipgloss.Color) *Canvas {
	c := &Canvas{}
	c.SetBackground(background)
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells. Pixels are cleared; callers
// redraw on the next frame.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.ink = make([][]ink, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.ink[i] = make([]ink, w)
	}
	c.Clear()
}

// SetBackground changes the colour dots are blended over.
func (c *Canvas) SetBackground(bg lipgloss.Color) {
	parsed, err := colorful.Hex(string(bg))
	if err != nil {
		parsed = colorful.Color{}
		bg = "#000000"
	}
	c.background, c.bg = bg, parsed
	c.blended = make(map[ink]lipgloss.Color)
}

func (c *Canvas) Background() lipgloss.Color { return c.background }

// PixelSize returns the canvas size in dots.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.ink[i][j] = ink{}
		}
	}
}

// Set lights the dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int, col lipgloss.Color, alpha float64) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= pixelMap[y%4][x%2]
	if alpha >= c.ink[row][cx].alpha {
		c.ink[row][cx] = ink{color: col, alpha: alpha}
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// FillCircle lights every dot whose centre lies within r of (x, y). The
// dot under the centre is always lit so sub-pixel radii stay visible.
func (c *Canvas) FillCircle(x, y, r float64, col lipgloss.Color, alpha float64) {
	c.Set(int(math.Floor(x)), int(math.Floor(y)), col, alpha)
	r2 := r * r
	for py := int(math.Floor(y - r)); py <= int(math.Ceil(y+r)); py++ {
		for px := int(math.Floor(x - r)); px <= int(math.Ceil(x+r)); px++ {
			dx, dy := float64(px)+0.5-x, float64(py)+0.5-y
			if dx*dx+dy*dy <= r2 {
				c.Set(px, py, col, alpha)
			}
		}
	}
}

// Line draws a segment using Bresenham's algorithm
func (c *Canvas) Line(x0f, y0f, x1f, y1f float64, col lipgloss.Color, alpha float64) {
	x0, y0 := int(math.Round(x0f)), int(math.Round(y0f))
	x1, y1 := int(math.Round(x1f)), int(math.Round(y1f))

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col, alpha)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// CellColor returns the blended colour of a cell, and false when the cell
// is empty.
func (c *Canvas) CellColor(row, col int) (lipgloss.Color, bool) {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width || c.Grid[row][col] == blank {
		return c.background, false
	}
	return c.blend(c.ink[row][col]), true
}

func (c *Canvas) blend(k ink) lipgloss.Color {
	if out, ok := c.blended[k]; ok {
		return out
	}
	fg, err := colorful.Hex(string(k.color))
	if err != nil {
		fg = colorful.Color{R: 1, G: 1, B: 1}
	}
	out := lipgloss.Color(c.bg.BlendRgb(fg, k.alpha).Clamped().Hex())
	c.blended[k] = out
	return out
}

// String returns the uncoloured Braille rendering.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with per-cell colours on the background.
// Runs of cells sharing a colour are styled together.
func (c *Canvas) Render() string {
	var b strings.Builder
	base := lipgloss.NewStyle().Background(c.background)
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		runColor, open := lipgloss.Color(""), false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := base
			if runColor != "" {
				st = st.Foreground(runColor)
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			clr, lit := c.CellColor(row, col)
			if !lit {
				clr = ""
			}
			if !open || clr != runColor {
				flush()
				runColor, open = clr, true
			}
			if lit {
				run.WriteRune(c.Grid[row][col])
			} else {
				run.WriteRune(' ')
			}
		}
		flush()
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
