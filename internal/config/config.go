// Package config loads server and CLI settings from an optional .env file,
// an optional YAML file and the process environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type StoreBackend string

const (
	BackendLocal  StoreBackend = "local"
	BackendSQLite StoreBackend = "sqlite"
)

type Config struct {
	GeminiAPIKey string       `env:"GEMINI_API_KEY" yaml:"gemini_api_key"`
	GeminiModel  string       `env:"GEMINI_MODEL" yaml:"gemini_model"`
	Port         string       `env:"PORT" yaml:"port"`
	StoreBackend StoreBackend `env:"STORE_BACKEND" yaml:"store_backend"`
	DataDir      string       `env:"DATA_DIR" yaml:"data_dir"`
	DatabasePath string       `env:"DATABASE_PATH" yaml:"database_path"`
	LogLevel     string       `env:"LOG_LEVEL" yaml:"log_level"`
	LogDev       bool         `env:"LOG_DEV" yaml:"log_dev"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		GeminiModel:  "gemini-2.5-flash",
		Port:         "8080",
		StoreBackend: BackendLocal,
		DataDir:      "./data",
		DatabasePath: "./data/stratyx.db",
		LogLevel:     "info",
	}
}

// Load reads .env (if present), then the YAML file named by STRATYX_CONFIG
// (if set), then environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFile(os.Getenv("STRATYX_CONFIG"))
}

// LoadFile is Load without the .env step.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendLocal, BackendSQLite:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %q or %q)", c.StoreBackend, BackendLocal, BackendSQLite)
	}
	return nil
}
