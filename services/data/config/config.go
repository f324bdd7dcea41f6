// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the analyzerkit CLI configuration from YAML
// with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	// EnvEndpoint overrides Config.Endpoint.
	EnvEndpoint = "ANALYZERKIT_ENDPOINT"

	// EnvLogLevel overrides Config.Log.Level.
	EnvLogLevel = "ANALYZERKIT_LOG_LEVEL"
)

// DefaultEndpoint is the conventional local data/parse endpoint.
const DefaultEndpoint = "localhost:10301"

// LogConfig controls CLI logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// JSON switches stderr output to JSON records.
	JSON bool `yaml:"json"`
}

// Config is the CLI configuration.
//
// The data and parse services share one endpoint; the per-worker
// channel derives both stubs from it.
type Config struct {
	// Endpoint is the gRPC address of the data/parse services.
	Endpoint string `yaml:"endpoint"`

	// DriverRequirements are version specifiers checked before
	// analysis, e.g. "python>=2.0.0".
	DriverRequirements []string `yaml:"driver_requirements"`

	// Log controls CLI logging.
	Log LogConfig `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file, applies defaults for missing values
// and environment overrides on top.
//
// An empty path yields Default() plus environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("config: endpoint must not be empty")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}
