package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven settings. Everything has a
// sensible default so the app runs with no environment at all.
type Config struct {
	// Port is the TCP port the host serves sessions on.
	Port int `env:"AIRSKETCH_PORT" envDefault:"8888"`

	// PixelsPerMeter maps world meters to screen pixels in the viewer.
	PixelsPerMeter float64 `env:"AIRSKETCH_SCALE" envDefault:"500"`

	// BrushThickness is the default pen thickness in meters.
	BrushThickness float64 `env:"AIRSKETCH_BRUSH_THICKNESS" envDefault:"0.005"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.PixelsPerMeter <= 0 {
		return Config{}, fmt.Errorf("invalid scale %v", cfg.PixelsPerMeter)
	}
	if cfg.BrushThickness <= 0 {
		return Config{}, fmt.Errorf("invalid brush thickness %v", cfg.BrushThickness)
	}
	return cfg, nil
}
