package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/sourcespace/internal/surface"
)

var ErrNoFrames = errors.New("export: no frames captured")

const (
	DefaultDotSize   = 4
	DefaultMaxFrames = 600
)

// Recorder captures canvas frames for an animated GIF. Each Braille dot
// becomes a DotSize square in its cell's blended colour.
type Recorder struct {
	DotSize   int
	MaxFrames int
	// Delay per frame in hundredths of a second.
	Delay int

	frames []*image.Paletted
}

func NewRecorder(fps int) *Recorder {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &Recorder{DotSize: DefaultDotSize, MaxFrames: DefaultMaxFrames, Delay: delay}
}

// Capture rasterises the canvas. It reports false once MaxFrames is
// reached.
func (r *Recorder) Capture(c *surface.Canvas) bool {
	if c == nil {
		return false
	}
	if r.MaxFrames > 0 && len(r.frames) >= r.MaxFrames {
		return false
	}

	dot := r.DotSize
	if dot <= 0 {
		dot = DefaultDotSize
	}
	pw, ph := c.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, pw*dot, ph*dot), palette.Plan9)

	bg := img.Palette.Index(toRGBA(c.Background()))
	for i := range img.Pix {
		img.Pix[i] = uint8(bg)
	}

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			clr, lit := c.CellColor(row, col)
			if !lit {
				continue
			}
			idx := uint8(img.Palette.Index(toRGBA(clr)))
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !c.Lit(x, y) {
						continue
					}
					for py := 0; py < dot; py++ {
						for px := 0; px < dot; px++ {
							img.SetColorIndex(x*dot+px, y*dot+py, idx)
						}
					}
				}
			}
		}
	}

	r.frames = append(r.frames, img)
	return true
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = nil }

// Encode writes the captured frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Encode(f)
}

func toRGBA(c lipgloss.Color) color.RGBA {
	cf, err := colorful.Hex(string(c))
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := cf.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
