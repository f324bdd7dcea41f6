// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging configures structured logging for analyzerkit
// components.
//
// The library packages log through log/slog directly; this package
// only owns the handler setup so binaries get consistent output:
//
//	logging.Setup(logging.Config{Level: "debug", Service: "analyzerkit"})
//	slog.Info("starting", "endpoint", endpoint)
//
// Output goes to stderr, text by default, JSON when requested. Setup
// installs the handler as the slog default, so every package in the
// process inherits it.
package logging

import (
	"log/slog"
	"os"
)

// Config controls the process-wide log handler.
//
// A zero Config yields Info-level text output on stderr.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	// Unknown or empty values fall back to "info".
	Level string

	// JSON switches output to JSON records, one per line.
	JSON bool

	// Quiet discards everything below Error. Meant for scripted use
	// of the CLI where only failures matter.
	Quiet bool

	// Service is attached to every record as the "service" attribute.
	Service string
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds the handler described by cfg and installs it as the
// slog default. Returns the logger for callers that prefer explicit
// handles over the package-level functions.
func Setup(cfg Config) *slog.Logger {
	level := ParseLevel(cfg.Level)
	if cfg.Quiet {
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
