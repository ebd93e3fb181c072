package raster

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	probePoints = 100.0
	minPoints   = 1.0
)

// Canvas renders captions in process with gg. Each Render draws on its
// own context, so a Canvas is safe for concurrent use.
type Canvas struct {
	source *text.FontSource
}

// NewCanvas loads the font at path, or Go Regular when path is empty.
func NewCanvas(path string) (*Canvas, error) {
	var (
		src *text.FontSource
		err error
	)
	if path == "" {
		src, err = text.NewFontSource(goregular.TTF)
	} else {
		src, err = text.NewFontSourceFromFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("raster: load font: %w", err)
	}
	return &Canvas{source: src}, nil
}

// FontName reports the loaded font's name.
func (r *Canvas) FontName() string { return r.source.Name() }

func (r *Canvas) Render(ctx context.Context, c Caption) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(c.Size.X, c.Size.Y)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(c.Background))

	if strings.TrimSpace(c.Text) != "" {
		face := r.fit(c.Text, c.Box)
		dc.SetFont(face)
		dc.SetColor(c.Fill)

		w, _ := dc.MeasureString(c.Text)
		m := face.Metrics()
		x := (float64(c.Size.X) - w) / 2
		y := float64(c.Size.Y)/2 + (m.Ascent-m.Descent)/2
		dc.DrawString(c.Text, x, y)
	}

	return dc.Image(), nil
}

// fit returns the largest face whose advance and line height fit in box.
func (r *Canvas) fit(s string, box image.Point) text.Face {
	probe := r.source.Face(probePoints)
	w := probe.Advance(s)
	m := probe.Metrics()
	h := m.Ascent + m.Descent

	scale := math.Inf(1)
	if w > 0 {
		scale = float64(box.X) / w
	}
	if h > 0 {
		scale = math.Min(scale, float64(box.Y)/h)
	}
	if math.IsInf(scale, 1) {
		return probe
	}
	return r.source.Face(math.Max(minPoints, probePoints*scale))
}
