package config

import "sort"

// Presets override the defaults for common layouts. Only the fields a
// preset sets differ from DefaultConfig.
var Presets = map[string]func(*Config){
	"single": func(c *Config) {},
	"banner": func(c *Config) {
		c.Rows, c.Columns = 1, 4
		c.Cell.Size = 64
		c.Speed = true
	},
	"wall": func(c *Config) {
		c.Rows, c.Columns = 3, 3
		c.Colors.Alternate = "word"
	},
	"ticker": func(c *Config) {
		c.Rows, c.Columns = 1, 6
		c.Delay = 120
		c.Trim = true
		c.Colors.Fill = "yellow"
	},
	"strobe": func(c *Config) {
		c.Delay = 100
		c.Colors.Alternate = "frame"
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

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
