package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor accepts a CSS/X11 color name ("white", "steelblue") or a
// hex triplet ("#fff", "#1e90ff", with or without the leading '#').
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return nil, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if name == "transparent" {
		return color.Transparent, nil
	}

	hex := strings.TrimPrefix(name, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return nil, fmt.Errorf("unknown color %q", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return nil, fmt.Errorf("unknown color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
