package app

import (
	"fmt"

	"github.com/vk/widgetserve/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string
	LogLevel  string

	// Site is fixed at build time; only tests replace it.
	Site config.Config
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if err := cfg.Site.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site configuration: %w", err)
	}
	return &cfg, nil
}
