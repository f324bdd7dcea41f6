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
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/analyzerkit/services/data"
	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// probeTimeout bounds the whole probe.
const probeTimeout = 10 * time.Second

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the data and parse services are reachable",
	Long: `Opens one channel per probe worker and exercises both services:
lists the installed drivers through the parse service and opens a
metadata-only files stream through the data service. Both probes run
concurrently on separate workers.`,
	RunE: runProbe,
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runProbe(cmd *cobra.Command, args []string) error {
	ds := data.NewDataService(cliConfig.Endpoint)
	defer ds.Shutdown()

	ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wctx := data.WithWorker(ctx, "probe-parse")
		stub, err := ds.GetParse(wctx)
		if err != nil {
			return err
		}
		resp, err := stub.SupportedLanguages(wctx, &api.SupportedLanguagesRequest{})
		if err != nil {
			ds.CloseChannel(wctx)
			return fmt.Errorf("parse service: %w", err)
		}
		fmt.Printf("parse service: %d driver(s) installed\n", len(resp.Languages))
		return nil
	})

	g.Go(func() error {
		wctx := data.WithWorker(ctx, "probe-data")
		stub, err := ds.GetData(wctx)
		if err != nil {
			return err
		}
		// Metadata-only request against an empty revision: reachable
		// services answer with an empty stream or a clean status.
		stream, err := data.RequestFiles(wctx, stub, api.ReferencePointer{}, false, false, false)
		if err != nil {
			ds.CloseChannel(wctx)
			return fmt.Errorf("data service: %w", err)
		}
		if _, err := stream.Next(); err != nil && !errors.Is(err, io.EOF) {
			// Any response at all, including a status error for the
			// bogus revision, proves the transport works.
			fmt.Printf("data service: reachable (%v)\n", err)
			return nil
		}
		fmt.Println("data service: reachable")
		return nil
	})

	return g.Wait()
}
