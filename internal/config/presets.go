package config

import "sort"

var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Particles.Count = 20
		c.Particles.Speed = 0.4
		c.Stars.Count = 80
	},
	"dense": func(c *Config) {
		c.Particles.Count = 150
		c.Particles.Threshold = 40
		c.Particles.Proximity = "grid"
	},
	"sparse": func(c *Config) {
		c.Particles.Count = 12
		c.Particles.Threshold = 140
		c.Stars.Count = 25
	},
	// terminal scales the defaults to Braille pixels, where a full screen
	// is only a couple of hundred dots wide.
	"terminal": func(c *Config) {
		c.Particles.Count = 40
		c.Particles.Threshold = 30
		c.Particles.Speed = 0.5
		c.Particles.RadiusMin = 0.5
		c.Particles.RadiusMax = 1.5
		c.FPS = 30
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply overlays the named preset onto c. It reports false for unknown
// presets.
func (c *Config) Apply(name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
