package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/wordgif/internal/config"
	"github.com/san-kum/wordgif/internal/engine"
	"github.com/san-kum/wordgif/internal/logging"
	"github.com/san-kum/wordgif/internal/progress"
	"github.com/san-kum/wordgif/internal/raster"
	"github.com/san-kum/wordgif/internal/storage"
	"github.com/san-kum/wordgif/internal/style"
	"github.com/san-kum/wordgif/internal/words"
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ecfg, err := cfg.Engine()
	if err != nil {
		return err
	}

	r, err := raster.New(cfg.Render.Rasterizer, cfg.Render.Font)
	if err != nil {
		return err
	}

	sel := words.NewSelector(nil)
	if cfg.Seed != 0 {
		sel = words.NewSeededSelector(cfg.Seed)
	}

	eng := engine.New(r, sel)
	line := progress.NewLine(cmd.OutOrStdout())
	if !quiet {
		eng.AddObserver(engine.ObserverFunc(func(step engine.Step, total int) {
			line.Frame(step.Index, total, step.Token)
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := eng.RunFile(ctx, cfg.Input, ecfg, engine.Output{Base: cfg.Output})
	if res == nil {
		return err
	}
	if err != nil {
		// Some animations were written; record what happened before failing.
		logging.Logger().Error("run finished with errors", "err", err)
	} else if !quiet {
		line.Finished(res.Paths, res.Frames)
	}

	if !noRecord {
		st := storage.New(dataDir)
		if ierr := st.Init(); ierr != nil {
			return ierr
		}
		runID, serr := st.Save(storage.Run{
			Input:      cfg.Input,
			Output:     cfg.Output,
			Config:     ecfg,
			Seed:       cfg.Seed,
			Rasterizer: cfg.Render.Rasterizer,
		}, res)
		if serr != nil {
			return serr
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "run saved: %s\n", runID)
		}
	}
	return err
}

// resolveConfig layers defaults, preset, config file and changed flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Input = input
	}
	if f.Changed("output") {
		cfg.Output = output
	}
	if f.Changed("columns") {
		cfg.Columns = columns
	}
	if f.Changed("rows") {
		cfg.Rows = rows
	}
	if f.Changed("delay") {
		cfg.Delay = delay
	}
	if f.Changed("fill") {
		cfg.Colors.Fill = fill
	}
	if f.Changed("background") {
		cfg.Colors.Background = background
	}
	if f.Changed("size") {
		cfg.Cell.Size = cellSize
	}
	if f.Changed("margin") {
		cfg.Cell.Margin = margin
	}
	if f.Changed("alternate") {
		if alternate {
			cfg.Colors.Alternate = style.Frame.String()
		} else {
			cfg.Colors.Alternate = style.Off.String()
		}
	}
	if f.Changed("alternate-mode") {
		cfg.Colors.Alternate = alternateMode
	}
	if f.Changed("trim") {
		cfg.Trim = trim
	}
	if f.Changed("speed") {
		cfg.Speed = speed
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("font") {
		cfg.Render.Font = font
	}
	if f.Changed("rasterizer") {
		cfg.Render.Rasterizer = rasterizer
	}
	if f.Changed("workers") {
		cfg.Render.Workers = workers
	}
	if f.Changed("quality") {
		cfg.Render.Quality = quality
	}
}
