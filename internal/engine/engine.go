package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/san-kum/wordgif/internal/anim"
	"github.com/san-kum/wordgif/internal/grid"
	"github.com/san-kum/wordgif/internal/logging"
	"github.com/san-kum/wordgif/internal/raster"
	"github.com/san-kum/wordgif/internal/style"
	"github.com/san-kum/wordgif/internal/timing"
	"github.com/san-kum/wordgif/internal/words"
)

type Engine struct {
	raster    raster.Rasterizer
	selector  *words.Selector
	observers []Observer
}

// New returns an Engine rendering with r. selector is only used by runs
// with trimming enabled; nil gets an unseeded one.
func New(r raster.Rasterizer, selector *words.Selector) *Engine {
	if selector == nil {
		selector = words.NewSelector(nil)
	}
	return &Engine{
		raster:    r,
		selector:  selector,
		observers: make([]Observer, 0),
	}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// ReadInput reads and tokenizes the text file at path.
func ReadInput(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
	return words.Tokenize(string(data)), nil
}

// RunFile reads the input file and runs it. A read failure is returned
// before any output is created.
func (e *Engine) RunFile(ctx context.Context, path string, cfg Config, out Output) (*Result, error) {
	tokens, err := ReadInput(path)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, tokens, cfg, out)
}

// Plan applies trimming, timing and styling to tokens. With trimming on
// the result differs between calls.
func (e *Engine) Plan(tokens []string, cfg Config) []Step {
	if cfg.Trim {
		tokens = e.selector.Select(tokens)
	}

	sched := timing.NewScheduler(cfg.Timing)
	alt := style.NewAlternator(cfg.Style)

	steps := make([]Step, 0, len(tokens))
	for i, tok := range tokens {
		fill, bg := alt.Next(tok)
		steps = append(steps, Step{
			Index:      i,
			Token:      tok,
			DelayMs:    sched.DelayFor(i, len(tokens)),
			Fill:       fill,
			Background: bg,
		})
	}
	return steps
}

// Run renders tokens into one animation per grid cell.
//
// A rasterization failure or cancellation aborts the run; files created
// so far are closed and left on disk. Encoding failures are collected
// per animation and returned together with the result.
func (e *Engine) Run(ctx context.Context, tokens []string, cfg Config, out Output) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	log := logging.Logger()

	steps := e.Plan(tokens, cfg)
	if len(steps) == 0 {
		return nil, ErrEmptyInput
	}
	log.Debug("planned run", "tokens", len(tokens), "frames", len(steps), "cells", cfg.Grid.NumCells())

	set, err := anim.OpenSet(out.Base, cfg.Grid, anim.Options{
		Size:    cfg.Grid.TileSize(),
		Palette: anim.RampPalette(cfg.Style.Fill, cfg.Style.Background, anim.LevelsForQuality(cfg.Quality)),
		Encoder: out.Encoder,
		Create:  out.Create,
	})
	if err != nil {
		return nil, err
	}

	workers := max(cfg.Workers, 1)
	for lo := 0; lo < len(steps); lo += workers {
		select {
		case <-ctx.Done():
			set.Abort()
			return nil, ctx.Err()
		default:
		}

		window := steps[lo:min(lo+workers, len(steps))]
		bitmaps, err := e.renderWindow(ctx, window, cfg, workers)
		if err != nil {
			set.Abort()
			return nil, err
		}

		for i, step := range window {
			if err := e.appendStep(set, step, bitmaps[i], len(steps), cfg.Grid); err != nil {
				set.Abort()
				return nil, err
			}
		}
	}

	result := &Result{
		Steps:   steps,
		Paths:   set.Paths(),
		Frames:  set.Frames(),
		Dropped: len(tokens) - len(steps),
	}

	err = set.Finish()
	result.Elapsed = time.Since(start)
	if err != nil {
		return result, err
	}
	return result, nil
}

func (e *Engine) appendStep(set *anim.Set, step Step, bitmap image.Image, total int, spec grid.Spec) error {
	tiles := grid.CompositeTiles(bitmap, spec)
	if err := set.AppendAll(tiles, step.DelayMs); err != nil {
		return fmt.Errorf("frame %d (%q): %w", step.Index, step.Token, err)
	}

	logging.Logger().Debug("frame appended", "index", step.Index, "token", step.Token, "delay_ms", step.DelayMs)
	for _, o := range e.observers {
		o.OnFrame(step, total)
	}
	return nil
}
