package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/frame"
	"github.com/san-kum/sourcespace/internal/palette"
	"github.com/san-kum/sourcespace/internal/stars"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Theme     string         `yaml:"theme"`
	Seed      uint64         `yaml:"seed"`
	FPS       int            `yaml:"fps"`
	Particles ParticleConfig `yaml:"particles"`
	Stars     StarConfig     `yaml:"stars"`
}

type ParticleConfig struct {
	Count     int     `yaml:"count"`
	Threshold float64 `yaml:"threshold"`
	EdgeAlpha float64 `yaml:"edge_alpha"`
	Speed     float64 `yaml:"speed"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	AlphaMin  float64 `yaml:"alpha_min"`
	AlphaMax  float64 `yaml:"alpha_max"`
	Proximity string  `yaml:"proximity"`
}

type StarConfig struct {
	Count int `yaml:"count"`
}

func DefaultConfig() *Config {
	fc := field.DefaultConfig()
	return &Config{
		Theme: palette.DefaultKey,
		FPS:   frame.DefaultFPS,
		Particles: ParticleConfig{
			Count:     fc.Count,
			Threshold: fc.Threshold,
			EdgeAlpha: fc.EdgeAlpha,
			Speed:     fc.Speed,
			RadiusMin: fc.RadiusMin,
			RadiusMax: fc.RadiusMax,
			AlphaMin:  fc.AlphaMin,
			AlphaMax:  fc.AlphaMax,
			Proximity: string(fc.Proximity),
		},
		Stars: StarConfig{Count: stars.DefaultCount},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Field converts the particle section to a field configuration.
func (c *Config) Field() field.Config {
	return field.Config{
		Count:     c.Particles.Count,
		Threshold: c.Particles.Threshold,
		EdgeAlpha: c.Particles.EdgeAlpha,
		Speed:     c.Particles.Speed,
		RadiusMin: c.Particles.RadiusMin,
		RadiusMax: c.Particles.RadiusMax,
		AlphaMin:  c.Particles.AlphaMin,
		AlphaMax:  c.Particles.AlphaMax,
		Proximity: field.Proximity(c.Particles.Proximity),
	}
}

// Streams returns a generator factory for backdrop.Options.NewRand: stream
// n is seeded from Seed and n. A zero Seed returns nil for fresh
// randomness.
func (c *Config) Streams() func(n int) *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	seed := c.Seed
	return func(n int) *rand.Rand {
		return rand.New(rand.NewPCG(seed, uint64(n)))
	}
}

func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: fps must be in (0,240], got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Stars.Count < 0 {
		return fmt.Errorf("%w: star count must be >= 0, got %d", ErrInvalidConfig, c.Stars.Count)
	}
	if err := c.Field().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
