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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/analyzerkit/services/data"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var driversCmd = &cobra.Command{
	Use:   "drivers [requirement...]",
	Short: "Check installed driver versions against requirements",
	Long: `Checks the parse service's installed language drivers against version
requirements of the form "<language><op><version>", e.g.
"javascript==1.3.0" or "python>=2.0.0".

Requirements come from the arguments, or from driver_requirements in
the config file when no arguments are given. Every unmet requirement
is reported in one pass.`,
	RunE: runDrivers,
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runDrivers(cmd *cobra.Command, args []string) error {
	requirements := args
	if len(requirements) == 0 {
		requirements = cliConfig.DriverRequirements
	}
	if len(requirements) == 0 {
		return fmt.Errorf("no driver requirements given (arguments or config)")
	}

	ds := data.NewDataService(cliConfig.Endpoint)
	defer ds.Shutdown()

	ctx := cmd.Context()
	err := ds.CheckDriverVersions(ctx, requirements)
	var unsatisfied *data.UnsatisfiedDriverVersionError
	if errors.As(err, &unsatisfied) {
		for _, m := range unsatisfied.Mismatches {
			fmt.Printf("UNMET\t%s\t%s\n", m.Language, m.Reason)
		}
		return fmt.Errorf("%d driver requirement(s) unmet", len(unsatisfied.Mismatches))
	}
	if err != nil {
		ds.CloseChannel(ctx)
		return err
	}

	fmt.Printf("OK\t%d requirement(s) satisfied\n", len(requirements))
	return nil
}
