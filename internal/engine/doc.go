// Package engine sequences words into synchronized grid animations.
//
// A run moves through these stages:
//
//   - tokens are optionally trimmed by a [words.Selector]
//   - [Engine.Plan] assigns every surviving token its delay and colors
//   - each token is rendered once by a [raster.Rasterizer]
//   - the bitmap is sliced into one tile per grid cell
//   - every tile is appended to the [anim.Session] of its cell
//   - all sessions are finished together
//
// # Example
//
//	r, _ := raster.NewCanvas("")
//	eng := engine.New(r, words.NewSelector(nil))
//	res, err := eng.Run(ctx, words.Tokenize(text), cfg, engine.Output{Base: "out"})
//
// # Ordering
//
// Rasterization may run on up to Config.Workers goroutines, but frames
// are appended strictly in token order, so every animation of a run has
// the same frames in the same order. An Engine is not safe for
// concurrent runs.
package engine
