package engine

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/san-kum/wordgif/internal/anim"
	"github.com/san-kum/wordgif/internal/grid"
	"github.com/san-kum/wordgif/internal/style"
	"github.com/san-kum/wordgif/internal/timing"
)

// Config is everything a run needs besides its input and output.
type Config struct {
	Grid   grid.Spec
	Timing timing.Policy
	Style  style.Policy
	Trim   bool

	CaptionScaleX float64
	CaptionScaleY float64

	// Workers bounds concurrent rasterization. Values below 1 mean 1.
	Workers int
	// Quality is the encoder quality, 1 best.
	Quality int
}

func DefaultConfig() Config {
	return Config{
		Grid: grid.Spec{
			Rows:       1,
			Columns:    1,
			CellWidth:  grid.DefaultCellSize,
			CellHeight: grid.DefaultCellSize,
			Margin:     grid.DefaultMargin,
		},
		Timing: timing.Policy{BaseDelayMs: timing.DefaultBaseDelayMs},
		Style: style.Policy{
			Fill:       color.White,
			Background: color.Black,
		},
		CaptionScaleX: grid.DefaultCaptionScaleX,
		CaptionScaleY: grid.DefaultCaptionScaleY,
		Workers:       1,
		Quality:       anim.DefaultQuality,
	}
}

// Output says where the animations go.
type Output struct {
	// Base is the path prefix; cell files are named {Base}{col}-{row}.gif.
	Base string
	// Create and Encoder override the file system and GIF encoder.
	Create  func(path string) (io.WriteCloser, error)
	Encoder anim.Encoder
}

// Step is one planned frame.
type Step struct {
	Index      int
	Token      string
	DelayMs    int
	Fill       color.Color
	Background color.Color
}

// Observer is notified as frames are appended, in order.
type Observer interface {
	OnFrame(step Step, total int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step Step, total int)

func (f ObserverFunc) OnFrame(step Step, total int) { f(step, total) }

// Result describes a completed run.
type Result struct {
	Steps   []Step
	Paths   []string
	Frames  int
	Dropped int
	Elapsed time.Duration
}

// Delays returns the delay of every frame in order.
func (r *Result) Delays() []int {
	d := make([]int, len(r.Steps))
	for i, s := range r.Steps {
		d[i] = s.DelayMs
	}
	return d
}

func validateConfig(cfg Config) error {
	if err := cfg.Grid.Validate(); err != nil {
		return err
	}
	if err := cfg.Timing.Validate(); err != nil {
		return err
	}
	if cfg.Style.Fill == nil || cfg.Style.Background == nil {
		return fmt.Errorf("fill and background colors must be set")
	}
	if cfg.CaptionScaleX <= 0 || cfg.CaptionScaleX > 1 || cfg.CaptionScaleY <= 0 || cfg.CaptionScaleY > 1 {
		return fmt.Errorf("caption scale must be in (0, 1], got %.2fx%.2f", cfg.CaptionScaleX, cfg.CaptionScaleY)
	}
	return nil
}
