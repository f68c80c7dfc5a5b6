package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "routeplan.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setInt(&cfg.Solver.ExactThreshold, "ROUTEPLAN_EXACT_THRESHOLD")
	setDuration(&cfg.Cache.Retention, "ROUTEPLAN_CACHE_RETENTION")
	setInt64(&cfg.Cache.L1Entries, "ROUTEPLAN_CACHE_L1_ENTRIES")
	setInt(&cfg.Coordinator.MaxConcurrent, "ROUTEPLAN_MAX_CONCURRENT")
	setString(&cfg.Logging.Level, "ROUTEPLAN_LOG_LEVEL")
	setString(&cfg.Logging.Service, "ROUTEPLAN_LOG_SERVICE")
}

// validate checks that fields are internally consistent.
func validate(cfg *Config) error {
	if cfg.Solver.ExactThreshold < 0 {
		return errors.New("solver.exact_threshold must be >= 0")
	}
	if cfg.Cache.Retention <= 0 {
		return errors.New("cache.retention must be positive")
	}
	if cfg.Cache.L1Entries < 1 {
		return errors.New("cache.l1_entries must be >= 1")
	}
	if cfg.Coordinator.MaxConcurrent < 1 {
		return errors.New("coordinator.max_concurrent must be >= 1")
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
