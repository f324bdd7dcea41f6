// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/analyzerkit/services/data"
	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	parseLanguage string // Language hint, empty for auto-detection
	parseUnicode  bool   // Convert positions to codepoint offsets
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one local file through the parse service",
	Long: `Sends a local file to the parse service and prints the resulting tree
summary and any parse diagnostics.

Parse diagnostics do not fail the command: a syntactically invalid
file still produces a partial tree. The command exits non-zero only
on transport failures.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseLanguage, "language", "l", "",
		"Language hint (auto-detected when empty)")
	parseCmd.Flags().BoolVar(&parseUnicode, "unicode", false,
		"Convert positions to codepoint offsets")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runParse(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	ds := data.NewDataService(cliConfig.Endpoint)
	defer ds.Shutdown()

	ctx := cmd.Context()
	stub, err := ds.GetParse(ctx)
	if err != nil {
		return err
	}
	uast, parseErrs, err := data.ParseCode(ctx, stub, code, args[0], parseUnicode, parseLanguage)
	if err != nil {
		ds.CloseChannel(ctx)
		return err
	}

	fmt.Printf("%s: %d nodes\n", args[0], countNodes(uast))
	for _, pe := range parseErrs {
		fmt.Printf("parse error: %s\n", pe.Text)
	}
	return nil
}

// countNodes counts the nodes of a tree.
func countNodes(root *api.Node) int {
	if root == nil {
		return 0
	}
	count := 1
	for _, child := range root.Children {
		count += countNodes(child)
	}
	return count
}
