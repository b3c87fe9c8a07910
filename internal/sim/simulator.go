package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sourcespace/internal/backdrop"
	"github.com/san-kum/sourcespace/internal/config"
	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/frame"
	"github.com/san-kum/sourcespace/internal/metrics"
	"github.com/san-kum/sourcespace/internal/palette"
	"github.com/san-kum/sourcespace/internal/surface"
)

var ErrInvalidRun = errors.New("sim: invalid run parameters")

// Options sizes a headless run. Cols and Rows are terminal cells; the
// field works in Braille pixels of Cols*2 x Rows*4.
type Options struct {
	Frames int
	Cols   int
	Rows   int
}

type Result struct {
	Theme palette.Theme
	Seed  uint64
	Field *field.Field
	// Canvas is the Braille surface as of the last frame, or nil when the
	// surface degraded.
	Canvas  *surface.Canvas
	Width   float64
	Height  float64
	Points  []metrics.Point
	Summary map[string]float64
}

// Simulator runs a backdrop scene on a manual frame source, as fast as
// the host allows.
type Simulator struct {
	cfg    *config.Config
	logger *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{cfg: cfg, logger: logger}
}

func (s *Simulator) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := s.validate(opts); err != nil {
		return nil, err
	}

	interval := time.Second / time.Duration(s.cfg.FPS)
	src := frame.NewManual(time.Time{}, interval)
	series := metrics.NewSeries(0, metrics.Defaults()...)
	width, height := float64(opts.Cols*2), float64(opts.Rows*4)

	scene := backdrop.New(backdrop.Options{
		Field:    s.cfg.Field(),
		Stars:    s.cfg.Stars.Count,
		FPS:      s.cfg.FPS,
		Source:   src,
		Viewport: func() (int, int) { return opts.Cols, opts.Rows },
		NewRand:  s.cfg.Streams(),
		OnFrame: func(f *field.Field, frames uint64) {
			series.Observe(metrics.NewSample(frames, f, width, height))
		},
		Logger: s.logger,
	})
	if err := scene.Mount(s.cfg.Theme); err != nil {
		return nil, err
	}
	fld, canvas := scene.Field(), scene.Canvas()
	defer scene.Unmount()

	for i := 0; i < opts.Frames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		src.Fire()
	}

	s.logger.Debug("run complete", "theme", scene.Theme().Key, "frames", opts.Frames)
	return &Result{
		Theme:   scene.Theme(),
		Seed:    s.cfg.Seed,
		Field:   fld,
		Canvas:  canvas,
		Width:   width,
		Height:  height,
		Points:  series.Points(),
		Summary: series.Summary(),
	}, nil
}

func (s *Simulator) validate(opts Options) error {
	if opts.Frames < 0 {
		return fmt.Errorf("%w: frames must be >= 0, got %d", ErrInvalidRun, opts.Frames)
	}
	if opts.Cols <= 0 || opts.Rows <= 0 {
		return fmt.Errorf("%w: surface must be positive, got %dx%d", ErrInvalidRun, opts.Cols, opts.Rows)
	}
	if s.cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidRun)
	}
	return s.cfg.Validate()
}
