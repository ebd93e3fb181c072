package anim

import (
	"image/color"
	"image/color/palette"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultQuality = 10
	maxRampLevels  = 255
	minRampLevels  = 2
)

// LevelsForQuality maps an encoder quality setting (1 best, larger is
// coarser) to the number of colors in a two-color ramp.
func LevelsForQuality(quality int) int {
	if quality < 1 {
		quality = 1
	}
	levels := 256 / quality
	return max(minRampLevels, min(maxRampLevels, levels))
}

// RampPalette returns a palette holding a transparent entry followed by
// levels colors blended in CIE-Lab from a to b. Samples are eased so the
// ramp is densest near the two pure colors, where most caption pixels
// land.
func RampPalette(a, b color.Color, levels int) color.Palette {
	levels = max(minRampLevels, min(maxRampLevels, levels))

	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA || !okB {
		return Fallback()
	}

	p := make(color.Palette, 0, levels+1)
	p = append(p, color.Transparent)
	for k := 0; k < levels; k++ {
		t := ease.InOutQuad(float64(k) / float64(levels-1))
		r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: bl, A: 0xff})
	}
	return p
}

// Fallback is the palette used when the caption colors are unknown. It
// keeps a transparent entry in front of the Plan 9 colors.
func Fallback() color.Palette {
	p := make(color.Palette, 0, 256)
	p = append(p, color.Transparent)
	p = append(p, palette.Plan9[:255]...)
	return p
}
