// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env
// struct tags, and validates derived values.
package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv string `env:"APP_ENV" default:"development"`
	Port   string `env:"PORT" default:"8080"`

	// ImagesDir is the pool: every file in it is a candidate for comparison.
	ImagesDir string `env:"IMAGES_DIR" default:"images"`
	// DataDir holds the active selections log and its archives.
	DataDir string `env:"DATA_DIR" default:"."`
	// StaticDir holds the CSS and client assets served under /static.
	StaticDir string `env:"STATIC_DIR" default:"web/static"`
	// TemplatesDir holds the HTML page templates parsed at startup.
	TemplatesDir string `env:"TEMPLATES_DIR" default:"web/templates"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// MaxUploadBytes caps a whole multipart upload request.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" default:"104857600"` // 100 MiB
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"IMAGES_DIR":    cfg.ImagesDir,
		"DATA_DIR":      cfg.DataDir,
		"STATIC_DIR":    cfg.StaticDir,
		"TEMPLATES_DIR": cfg.TemplatesDir,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return nil
}
