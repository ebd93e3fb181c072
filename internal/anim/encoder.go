package anim

import (
	"image"
	"image/gif"
	"io"
)

// Frame is one buffered animation frame.
type Frame struct {
	Image   *image.Paletted
	DelayMs int
}

// Encoder serializes a finished frame sequence.
type Encoder interface {
	Encode(w io.Writer, frames []Frame) error
}

// GIFEncoder writes animated GIFs with a delay stored on every frame.
type GIFEncoder struct {
	// LoopCount follows image/gif: 0 repeats forever.
	LoopCount int
}

func (e GIFEncoder) Encode(w io.Writer, frames []Frame) error {
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		Disposal:  make([]byte, 0, len(frames)),
		LoopCount: e.LoopCount,
	}
	for _, f := range frames {
		anim.Image = append(anim.Image, f.Image)
		anim.Delay = append(anim.Delay, Centiseconds(f.DelayMs))
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}
	return gif.EncodeAll(w, anim)
}

// Centiseconds converts a millisecond delay to GIF delay units, rounding
// to the nearest unit and never below one.
func Centiseconds(ms int) int {
	cs := (ms + 5) / 10
	if cs < 1 {
		cs = 1
	}
	return cs
}
