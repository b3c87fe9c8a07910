package field

import (
	"errors"
	"fmt"
)

const (
	DefaultCount     = 30
	DefaultThreshold = 100.0
	DefaultEdgeAlpha = 0.1
	DefaultSpeed     = 1.0
	DefaultRadiusMin = 1.0
	DefaultRadiusMax = 4.0
	DefaultAlphaMin  = 0.3
	DefaultAlphaMax  = 0.8

	// gridCutover is the particle count above which ProximityAuto uses the grid.
	gridCutover = 200
)

// Proximity selects the pair search strategy.
type Proximity string

const (
	ProximityAuto     Proximity = "auto"
	ProximityPairwise Proximity = "pairwise"
	ProximityGrid     Proximity = "grid"
)

var ErrInvalidConfig = errors.New("field: invalid configuration")

// Config tunes particle creation and the connection pass.
type Config struct {
	Count     int
	Threshold float64
	EdgeAlpha float64
	Speed     float64
	RadiusMin float64
	RadiusMax float64
	AlphaMin  float64
	AlphaMax  float64
	Proximity Proximity
}

func DefaultConfig() Config {
	return Config{
		Count:     DefaultCount,
		Threshold: DefaultThreshold,
		EdgeAlpha: DefaultEdgeAlpha,
		Speed:     DefaultSpeed,
		RadiusMin: DefaultRadiusMin,
		RadiusMax: DefaultRadiusMax,
		AlphaMin:  DefaultAlphaMin,
		AlphaMax:  DefaultAlphaMax,
		Proximity: ProximityAuto,
	}
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidConfig, c.Count)
	case c.Threshold < 0:
		return fmt.Errorf("%w: threshold must be >= 0, got %f", ErrInvalidConfig, c.Threshold)
	case c.EdgeAlpha < 0 || c.EdgeAlpha > 1:
		return fmt.Errorf("%w: edge alpha must be in [0,1], got %f", ErrInvalidConfig, c.EdgeAlpha)
	case c.Speed < 0:
		return fmt.Errorf("%w: speed must be >= 0, got %f", ErrInvalidConfig, c.Speed)
	case c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin:
		return fmt.Errorf("%w: radius range [%f,%f]", ErrInvalidConfig, c.RadiusMin, c.RadiusMax)
	case c.AlphaMin < 0 || c.AlphaMax > 1 || c.AlphaMax < c.AlphaMin:
		return fmt.Errorf("%w: alpha range [%f,%f]", ErrInvalidConfig, c.AlphaMin, c.AlphaMax)
	}
	switch c.Proximity {
	case "", ProximityAuto, ProximityPairwise, ProximityGrid:
	default:
		return fmt.Errorf("%w: unknown proximity %q", ErrInvalidConfig, c.Proximity)
	}
	return nil
}

func (c Config) finder(count int) Finder {
	switch c.Proximity {
	case ProximityGrid:
		return NewGrid()
	case ProximityPairwise:
		return Pairwise{}
	}
	if count > gridCutover {
		return NewGrid()
	}
	return Pairwise{}
}
