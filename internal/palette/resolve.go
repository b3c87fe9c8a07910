package palette

import "strings"

// Normalize trims and lower-cases a theme key as received from the shell.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Known reports whether key names a recognised theme.
func Known(key string) bool {
	_, ok := find(Normalize(key))
	return ok
}

// Lookup returns the theme for key, falling back to the default theme.
func Lookup(key string) Theme {
	if t, ok := find(Normalize(key)); ok {
		return clone(t)
	}
	t, _ := find(DefaultKey)
	return clone(t)
}

// Resolve maps a theme key to its palette. It never fails: unknown keys
// resolve to the default palette. The returned slice is a fresh copy.
func Resolve(key string) Palette {
	return Lookup(key).Colors
}

// Default returns the default palette.
func Default() Palette {
	return Resolve(DefaultKey)
}

// Keys returns the recognised theme keys in display order.
func Keys() []string {
	keys := make([]string, len(themes))
	for i, t := range themes {
		keys[i] = t.Key
	}
	return keys
}

// Next returns the key following key in display order, wrapping around.
func Next(key string) string {
	key = Normalize(key)
	for i, t := range themes {
		if t.Key == key {
			return themes[(i+1)%len(themes)].Key
		}
	}
	return themes[0].Key
}

func find(key string) (Theme, bool) {
	for _, t := range themes {
		if t.Key == key {
			return t, true
		}
	}
	return Theme{}, false
}

func clone(t Theme) Theme {
	colors := make(Palette, len(t.Colors))
	copy(colors, t.Colors)
	t.Colors = colors
	return t
}
