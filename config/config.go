// Package config provides hierarchical configuration loading for routeplan.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the route planning service.
type Config struct {
	Solver      Solver      `yaml:"solver"`
	Cache       Cache       `yaml:"cache"`
	Coordinator Coordinator `yaml:"coordinator"`
	Logging     Logging     `yaml:"logging"`
}

// Solver holds algorithm selection configuration.
type Solver struct {
	// ExactThreshold is the stop count at or below which auto-selection
	// runs the exact solver. 0 keeps the built-in default.
	ExactThreshold int `yaml:"exact_threshold"`
}

// Cache holds result cache configuration.
type Cache struct {
	// Retention is how long cached routes stay valid.
	Retention time.Duration `yaml:"retention"`

	// L1Entries bounds the in-process hot-key layer.
	L1Entries int64 `yaml:"l1_entries"`
}

// Coordinator holds solve dispatch configuration.
type Coordinator struct {
	// MaxConcurrent bounds simultaneously running solves.
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Solver: Solver{
			ExactThreshold: 0, // solver default
		},
		Cache: Cache{
			Retention: 7 * 24 * time.Hour,
			L1Entries: 4096,
		},
		Coordinator: Coordinator{
			MaxConcurrent: 4,
		},
		Logging: Logging{
			Level:   "info",
			Service: "routeplan",
		},
	}
}
