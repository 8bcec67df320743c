// Package config loads dashboard settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/TWhYNoTT/indicators-sub001/internal/export"
	"github.com/TWhYNoTT/indicators-sub001/internal/render"
)

// Config holds the settings shared by the CLI and the render server.
type Config struct {
	HTTPAddr          string        `env:"DASHBOARD_HTTP_ADDR"          envDefault:"localhost:8080"`
	ChartWidth        float64       `env:"DASHBOARD_CHART_WIDTH"        envDefault:"720"`
	ChartHeight       float64       `env:"DASHBOARD_CHART_HEIGHT"       envDefault:"420"`
	ScreenshotTimeout time.Duration `env:"DASHBOARD_SCREENSHOT_TIMEOUT" envDefault:"30s"`
	ChromeNoSandbox   bool          `env:"DASHBOARD_CHROME_NO_SANDBOX"  envDefault:"false"`
	JPEGQuality       int           `env:"DASHBOARD_JPEG_QUALITY"       envDefault:"90"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration, validated.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no renderer can honour.
func (c Config) Validate() error {
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %vx%v", c.ChartWidth, c.ChartHeight)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.ScreenshotTimeout <= 0 {
		return fmt.Errorf("screenshot timeout must be positive, got %v", c.ScreenshotTimeout)
	}
	return nil
}

// Layout is the render layout for the configured chart size.
func (c Config) Layout() render.Layout {
	return render.Layout{Width: c.ChartWidth, Height: c.ChartHeight}
}

// ExportOptions converts the configuration into export options.
func (c Config) ExportOptions() export.Options {
	return export.Options{
		Layout:            c.Layout(),
		ScreenshotTimeout: c.ScreenshotTimeout,
		NoSandbox:         c.ChromeNoSandbox,
		JPEGQuality:       c.JPEGQuality,
	}
}
