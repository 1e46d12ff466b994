package glint

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPrefix is the environment prefix used by the examples.
const DefaultEnvPrefix = "GLINT"

// Config holds the tunable settings of both effects as read from the
// environment, e.g. GLINT_BORDER_COLOR or GLINT_CURSOR_TRAIL_LENGTH.
type Config struct {
	Border        BorderSettings `envconfig:"BORDER"`
	Cursor        CursorSettings `envconfig:"CURSOR"`
	ReducedMotion bool           `envconfig:"REDUCED_MOTION" default:"false"`
	Debug         bool           `envconfig:"DEBUG" default:"false"`
	ShowFPS       bool           `envconfig:"SHOW_FPS" default:"false"`
	// Script is the path of a JSON replay script. The host exits when it
	// finishes.
	Script        string `envconfig:"SCRIPT"`
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
}

// BorderSettings is the environment form of BorderConfig.
type BorderSettings struct {
	Color     string  `envconfig:"COLOR" default:"#7df9ff"`
	Speed     float64 `envconfig:"SPEED" default:"1"`
	Chaos     float64 `envconfig:"CHAOS" default:"0.5"`
	Thickness float64 `envconfig:"THICKNESS" default:"2"`
	Points    int     `envconfig:"POINTS" default:"100"`
}

// CursorSettings is the environment form of CursorConfig.
type CursorSettings struct {
	Color         string        `envconfig:"COLOR" default:"#7df9ff"`
	Size          float64       `envconfig:"SIZE" default:"20"`
	TrailLength   int           `envconfig:"TRAIL_LENGTH" default:"20"`
	ParticleCount int           `envconfig:"PARTICLE_COUNT" default:"5"`
	Smoothing     float64       `envconfig:"SMOOTHING" default:"0.15"`
	TrailMaxAge   time.Duration `envconfig:"TRAIL_MAX_AGE" default:"500ms"`
}

// LoadConfig reads settings from environment variables under prefix. Unset
// variables take the stock defaults. Unparsable values and colors are
// returned as errors.
func LoadConfig(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := cfg.BorderConfig(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := cfg.CursorConfig(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// BorderConfig converts the border settings. Numeric values are passed
// through; NewBorder clamps them.
func (c *Config) BorderConfig() (BorderConfig, error) {
	col, err := ParseColor(c.Border.Color)
	if err != nil {
		return BorderConfig{}, fmt.Errorf("border color: %w", err)
	}
	return BorderConfig{
		Color:     col,
		Speed:     c.Border.Speed,
		Chaos:     c.Border.Chaos,
		Thickness: c.Border.Thickness,
		Points:    c.Border.Points,
	}, nil
}

// CursorConfig converts the cursor settings, keeping the default burst
// physics.
func (c *Config) CursorConfig() (CursorConfig, error) {
	col, err := ParseColor(c.Cursor.Color)
	if err != nil {
		return CursorConfig{}, fmt.Errorf("cursor color: %w", err)
	}
	return CursorConfig{
		Color:         col,
		Size:          c.Cursor.Size,
		TrailLength:   c.Cursor.TrailLength,
		ParticleCount: c.Cursor.ParticleCount,
		Smoothing:     c.Cursor.Smoothing,
		TrailMaxAge:   c.Cursor.TrailMaxAge,
		Burst:         DefaultBurstConfig(),
	}, nil
}

// ApplyHost copies the host-level settings onto h: FPS readout, debug
// logging, reduced motion, screenshot directory, and the replay script.
func (c *Config) ApplyHost(h *Host) error {
	h.ShowFPS = c.ShowFPS
	h.ScreenshotDir = c.ScreenshotDir
	h.SetDebugMode(c.Debug)
	if c.ReducedMotion {
		h.SetReducedMotion(true)
	}
	if c.Script == "" {
		return nil
	}
	data, err := os.ReadFile(c.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	r, err := LoadScript(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Script, err)
	}
	h.SetScript(r)
	h.ExitWhenDone = true
	return nil
}
