package engine

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/wordgif/internal/raster"
)

// renderWindow rasterizes steps on up to workers goroutines. Bitmaps are
// returned in step order. The first failure cancels the rest.
func (e *Engine) renderWindow(ctx context.Context, steps []Step, cfg Config, workers int) ([]image.Image, error) {
	bitmaps := make([]image.Image, len(steps))
	size := cfg.Grid.CanvasSize()
	box := cfg.Grid.CaptionBox(cfg.CaptionScaleX, cfg.CaptionScaleY)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, step := range steps {
		g.Go(func() error {
			img, err := e.raster.Render(gctx, raster.Caption{
				Text:       step.Token,
				Fill:       step.Fill,
				Background: step.Background,
				Size:       size,
				Box:        box,
			})
			if err != nil {
				return &RasterizationError{Index: step.Index, Token: step.Token, Wrapped: err}
			}
			bitmaps[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bitmaps, nil
}
