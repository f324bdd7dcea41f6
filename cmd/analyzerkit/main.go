// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// analyzerkit is the command line companion of the analyzer SDK: it
// fetches files and changes from a data service, parses single files
// through the parse service, and checks driver compatibility.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/analyzerkit/pkg/logging"
	"github.com/AleutianAI/analyzerkit/services/data/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

var (
	flagConfig   string // Path to the YAML config file
	flagEndpoint string // Endpoint override
	flagLogLevel string // Log level override
	flagJSONLogs bool   // JSON log output
	flagQuiet    bool   // Errors only
)

// cliConfig is the resolved configuration, populated before any
// subcommand runs.
var cliConfig config.Config

// =============================================================================
// ROOT COMMAND
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "analyzerkit",
	Short: "Client tooling for the analyzer data and parse services",
	Long: `analyzerkit talks to the data and parse services analyzers run against.

It can stream the files of a revision or the changes between two
revisions, parse a single local file into a UAST, and verify that the
installed language drivers satisfy version requirements.

Examples:
  analyzerkit fetch files --url file:///work/repo --ref refs/heads/main --hash HEAD
  analyzerkit fetch changes --base-hash abc123 --head-hash def456 --url file:///work/repo
  analyzerkit parse main.go
  analyzerkit drivers python\>=2.0.0 go==1.0.0
  analyzerkit probe`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagEndpoint != "" {
			cfg.Endpoint = flagEndpoint
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		if flagJSONLogs {
			cfg.Log.JSON = true
		}
		cliConfig = cfg

		logging.Setup(logging.Config{
			Level:   cfg.Log.Level,
			JSON:    cfg.Log.JSON,
			Quiet:   flagQuiet,
			Service: "analyzerkit",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "",
		"Data/parse service endpoint (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false,
		"Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"Only log errors")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(driversCmd)
	rootCmd.AddCommand(probeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
