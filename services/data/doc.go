// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package data is the client-side data-access layer for analyzers.
//
// It manages per-worker gRPC channels to the data/parse endpoint,
// composes streaming file and change requests, and provides the
// wrapper family that injects ready-made record streams into analyzer
// entry points.
//
// # Architecture
//
//	caller ── wrapper (handlers.go) ── DataService (service.go)
//	                   │                        │
//	                   │                 per-worker channel
//	                   │                        │
//	            RequestFiles/Changes ──► Data service (streaming)
//	            ParseCode/Versions  ──► Parse service (unary)
//
// A DataService owns at most one live channel per worker; worker
// identity travels through the context (see WithWorker). On any RPC
// failure the wrapper tears the failing worker's channel down before
// the error propagates, so the next call re-establishes a fresh one.
// The layer never caches records and never retries on its own.
//
// # Usage
//
//	ds := data.NewDataService("localhost:10301")
//	defer ds.Shutdown()
//
//	analyze := data.WithChangedUASTs(false)(func(ctx context.Context,
//	    base, head api.ReferencePointer, ds *data.DataService,
//	    changes *data.ChangeStream) ([]api.Comment, error) {
//	    for {
//	        change, err := changes.Next()
//	        if err == io.EOF {
//	            break
//	        }
//	        if err != nil {
//	            return nil, err
//	        }
//	        // inspect change.Head.UAST ...
//	    }
//	    return nil, nil
//	})
package data
