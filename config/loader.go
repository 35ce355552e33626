package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/mindthegap/registry"
)

// Environment variables that override file values.
const (
	EnvAppID       = "TFL_APP_ID"
	EnvAppKey      = "TFL_APP_KEY"
	EnvMetricsAddr = "MINDTHEGAP_METRICS_ADDR"
	EnvLinesDir    = "MINDTHEGAP_LINES_DIR"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads .env if present, then loads and validates config.yml
func LoadAppConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	paths := []string{"config.yml", "./config/config.yml"}
	var err error
	for _, p := range paths {
		var cfg AppConfig
		cfg, err = LoadFile(p)
		if err == nil {
			Config = cfg
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return err
}

// LoadFile reads one config file, applies environment overrides and
// defaults, and validates the result.
func LoadFile(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	applyEnv(&cfg)
	if cfg.Network.NearestRadiusMeters == 0 {
		cfg.Network.NearestRadiusMeters = registry.DefaultRadiusMeters
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v, ok := os.LookupEnv(EnvAppID); ok {
		cfg.Arrivals.AppID = v
	}
	if v, ok := os.LookupEnv(EnvAppKey); ok {
		cfg.Arrivals.AppKey = v
	}
	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		cfg.Metrics.Addr = v
	}
	if v, ok := os.LookupEnv(EnvLinesDir); ok {
		cfg.Data.LinesDir = v
	}
}
