package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wordgif/internal/anim"
	"github.com/san-kum/wordgif/internal/engine"
	"github.com/san-kum/wordgif/internal/grid"
	"github.com/san-kum/wordgif/internal/style"
	"github.com/san-kum/wordgif/internal/timing"
)

const (
	DefaultInput      = "input"
	DefaultOutput     = "output"
	DefaultFill       = "white"
	DefaultBackground = "black"
	DefaultRasterizer = "canvas"
)

type Config struct {
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	Rows    int           `yaml:"rows"`
	Columns int           `yaml:"columns"`
	Delay   int           `yaml:"delay"`
	Speed   bool          `yaml:"speed"`
	Trim    bool          `yaml:"trim"`
	Seed    uint64        `yaml:"seed"`
	Colors  ColorConfig   `yaml:"colors"`
	Cell    CellConfig    `yaml:"cell"`
	Render  RenderConfig  `yaml:"render"`
	Caption CaptionConfig `yaml:"caption"`
}

type ColorConfig struct {
	Fill       string `yaml:"fill"`
	Background string `yaml:"background"`
	// Alternate is one of off, frame or word.
	Alternate string `yaml:"alternate"`
}

type CellConfig struct {
	Size   int `yaml:"size"`
	Margin int `yaml:"margin"`
}

type RenderConfig struct {
	Rasterizer string `yaml:"rasterizer"`
	Font       string `yaml:"font"`
	Workers    int    `yaml:"workers"`
	Quality    int    `yaml:"quality"`
}

type CaptionConfig struct {
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:   DefaultInput,
		Output:  DefaultOutput,
		Rows:    1,
		Columns: 1,
		Delay:   timing.DefaultBaseDelayMs,
		Colors: ColorConfig{
			Fill:       DefaultFill,
			Background: DefaultBackground,
			Alternate:  style.Off.String(),
		},
		Cell: CellConfig{
			Size:   grid.DefaultCellSize,
			Margin: grid.DefaultMargin,
		},
		Render: RenderConfig{
			Rasterizer: DefaultRasterizer,
			Workers:    1,
			Quality:    anim.DefaultQuality,
		},
		Caption: CaptionConfig{
			ScaleX: grid.DefaultCaptionScaleX,
			ScaleY: grid.DefaultCaptionScaleY,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, typically a preset.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GridSpec() grid.Spec {
	return grid.Spec{
		Rows:       c.Rows,
		Columns:    c.Columns,
		CellWidth:  c.Cell.Size,
		CellHeight: c.Cell.Size,
		Margin:     c.Cell.Margin,
	}
}

func (c *Config) TimingPolicy() timing.Policy {
	return timing.Policy{BaseDelayMs: c.Delay, SpeedRamp: c.Speed}
}

func (c *Config) StylePolicy() (style.Policy, error) {
	fill, err := style.ParseColor(c.Colors.Fill)
	if err != nil {
		return style.Policy{}, fmt.Errorf("fill: %w", err)
	}
	bg, err := style.ParseColor(c.Colors.Background)
	if err != nil {
		return style.Policy{}, fmt.Errorf("background: %w", err)
	}
	mode, err := style.ParseMode(c.Colors.Alternate)
	if err != nil {
		return style.Policy{}, err
	}
	return style.Policy{Fill: fill, Background: bg, Mode: mode}, nil
}

// Engine converts the file form into an engine configuration.
func (c *Config) Engine() (engine.Config, error) {
	sp, err := c.StylePolicy()
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Grid:          c.GridSpec(),
		Timing:        c.TimingPolicy(),
		Style:         sp,
		Trim:          c.Trim,
		CaptionScaleX: c.Caption.ScaleX,
		CaptionScaleY: c.Caption.ScaleY,
		Workers:       c.Render.Workers,
		Quality:       c.Render.Quality,
	}, nil
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is empty")
	}
	if err := c.GridSpec().Validate(); err != nil {
		return err
	}
	if err := c.TimingPolicy().Validate(); err != nil {
		return err
	}
	if _, err := c.StylePolicy(); err != nil {
		return err
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Render.Workers)
	}
	if c.Render.Quality < 1 {
		return fmt.Errorf("quality must be at least 1, got %d", c.Render.Quality)
	}
	return nil
}
