// Package raster turns a caption into a bitmap.
//
// Two adapters are provided:
//
//   - [Canvas]: in-process, draws with github.com/gogpu/gg
//   - [Magick]: runs ImageMagick's convert and decodes its PNG output
//
// Both fit the text into Caption.Box, center it, and fill the whole
// Caption.Size canvas with the background color.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Caption is one rendering request.
type Caption struct {
	Text       string
	Fill       color.Color
	Background color.Color
	// Size of the returned bitmap.
	Size image.Point
	// Box the text is fitted into, centered in Size.
	Box image.Point
}

func (c Caption) validate() error {
	if c.Size.X <= 0 || c.Size.Y <= 0 {
		return fmt.Errorf("raster: invalid canvas size %v", c.Size)
	}
	if c.Box.X <= 0 || c.Box.Y <= 0 {
		return fmt.Errorf("raster: invalid caption box %v", c.Box)
	}
	if c.Fill == nil || c.Background == nil {
		return fmt.Errorf("raster: caption colors not set")
	}
	return nil
}

// Rasterizer renders captions.
type Rasterizer interface {
	Render(ctx context.Context, c Caption) (image.Image, error)
}

// New returns the rasterizer registered under name: "canvas" (default)
// or "magick". font is an optional TTF/OTF path.
func New(name, font string) (Rasterizer, error) {
	switch strings.ToLower(name) {
	case "", "canvas", "gg":
		return NewCanvas(font)
	case "magick", "imagemagick":
		return &Magick{Font: font}, nil
	}
	return nil, fmt.Errorf("unknown rasterizer: %s", name)
}

// Names lists the accepted rasterizer names.
func Names() []string { return []string{"canvas", "magick"} }
