// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	opts := cfg.Engine.DedupOptions()
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/categorizer"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
)

// Config represents the entire application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// EngineConfig holds reconciliation engine settings. Category and bank
// tables are optional; when omitted the built-in defaults apply.
type EngineConfig struct {
	DateToleranceDays    int               `yaml:"date_tolerance_days"`
	AmountTolerance      float64           `yaml:"amount_tolerance"`
	RequireExactCategory bool              `yaml:"require_exact_category"`
	Categories           categorizer.Table `yaml:"categories"`
	Banks                bankmatch.Table   `yaml:"banks"`
}

// DedupOptions converts the engine section into detector options,
// filling unset tolerances with the detector defaults.
func (e EngineConfig) DedupOptions() dedup.Options {
	opts := dedup.DefaultOptions()
	if e.DateToleranceDays > 0 {
		opts.DateToleranceDays = e.DateToleranceDays
	}
	if e.AmountTolerance > 0 {
		opts.AmountTolerance = e.AmountTolerance
	}
	opts.RequireExactCategory = e.RequireExactCategory
	return opts
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadOrEnv loads config.yaml if present, otherwise falls back to
// environment variables.
func LoadOrEnv() *Config {
	if cfg, err := Load("config.yaml"); err == nil {
		return cfg
	}
	return FromEnv()
}

// FromEnv builds configuration from environment variables with
// sensible defaults.
func FromEnv() *Config {
	cfg := defaults()

	if path := os.Getenv("RECON_DB_PATH"); path != "" {
		cfg.Storage.DatabasePath = path
	}
	if port := os.Getenv("RECON_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if level := os.Getenv("RECON_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("RECON_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	return cfg
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Storage: StorageConfig{
			DatabasePath: "reconcile.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			DateToleranceDays: 1,
			AmountTolerance:   0.01,
		},
	}
}
