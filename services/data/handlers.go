// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package data

import (
	"context"
	"errors"

	"google.golang.org/grpc/status"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// Analyzer Entry Points
// =============================================================================

// TrainFunc is a train-style analyzer entry point. The wrapper family
// supplies the files argument; implementations return an opaque model.
type TrainFunc func(ctx context.Context, ptr api.ReferencePointer, config map[string]any,
	ds *DataService, files *FileStream) (any, error)

// AnalyzeFunc is an analyze-style analyzer entry point. The wrapper
// family supplies the changes argument.
type AnalyzeFunc func(ctx context.Context, base, head api.ReferencePointer,
	ds *DataService, changes *ChangeStream) ([]api.Comment, error)

// =============================================================================
// Error Wrapper
// =============================================================================

// isRPCError reports whether err (or anything it wraps) is a gRPC
// status error, i.e. a transport-level failure.
func isRPCError(err error) bool {
	if err == nil {
		return false
	}
	var se interface{ GRPCStatus() *status.Status }
	return errors.As(err, &se)
}

// invalidateOnRPCError applies the uniform failure contract: on a
// transport failure, close the calling worker's channel first, then
// let the original error propagate unchanged. No wrapping, no
// swallowing, no retry; a transient fault must never leave a poisoned
// channel bound to a worker.
func invalidateOnRPCError(ctx context.Context, ds *DataService, err error) {
	if isRPCError(err) {
		rpcFailures.Inc()
		ds.CloseChannel(ctx)
	}
}

func handleRPCErrorsTrain(fn TrainFunc) TrainFunc {
	return func(ctx context.Context, ptr api.ReferencePointer, config map[string]any,
		ds *DataService, files *FileStream) (any, error) {
		model, err := fn(ctx, ptr, config, ds, files)
		if err != nil {
			invalidateOnRPCError(ctx, ds, err)
		}
		return model, err
	}
}

func handleRPCErrorsAnalyze(fn AnalyzeFunc) AnalyzeFunc {
	return func(ctx context.Context, base, head api.ReferencePointer,
		ds *DataService, changes *ChangeStream) ([]api.Comment, error) {
		comments, err := fn(ctx, base, head, ds, changes)
		if err != nil {
			invalidateOnRPCError(ctx, ds, err)
		}
		return comments, err
	}
}

// =============================================================================
// Wrapper Family
// =============================================================================
//
// Six factories cover {UASTs, contents, both} x {files, changes}; the
// unicode toggle is fixed at construction, not per call. Each produced
// wrapper obtains the worker's data stub, composes the matching
// request and hands the lazy stream to the wrapped entry point, under
// the uniform error contract above.

// withFiles builds a train-side wrapper factory for one flag
// combination.
func withFiles(contents, uast, wantUnicode bool) func(TrainFunc) TrainFunc {
	return func(fn TrainFunc) TrainFunc {
		return handleRPCErrorsTrain(func(ctx context.Context, ptr api.ReferencePointer,
			config map[string]any, ds *DataService, _ *FileStream) (any, error) {
			stub, err := ds.GetData(ctx)
			if err != nil {
				return nil, err
			}
			files, err := RequestFiles(ctx, stub, ptr, contents, uast, wantUnicode)
			if err != nil {
				return nil, err
			}
			return fn(ctx, ptr, config, ds, files)
		})
	}
}

// withChanges builds an analyze-side wrapper factory for one flag
// combination.
func withChanges(contents, uast, wantUnicode bool) func(AnalyzeFunc) AnalyzeFunc {
	return func(fn AnalyzeFunc) AnalyzeFunc {
		return handleRPCErrorsAnalyze(func(ctx context.Context, base, head api.ReferencePointer,
			ds *DataService, _ *ChangeStream) ([]api.Comment, error) {
			stub, err := ds.GetData(ctx)
			if err != nil {
				return nil, err
			}
			changes, err := RequestChanges(ctx, stub, base, head, contents, uast, wantUnicode)
			if err != nil {
				return nil, err
			}
			return fn(ctx, base, head, ds, changes)
		})
	}
}

// WithUASTs supplies files carrying only UASTs to a train entry point.
//
// wantUnicode selects codepoint-based positions; false keeps the
// service response untouched.
func WithUASTs(wantUnicode bool) func(TrainFunc) TrainFunc {
	return withFiles(false, true, wantUnicode)
}

// WithContents supplies files carrying only raw contents to a train
// entry point.
func WithContents(wantUnicode bool) func(TrainFunc) TrainFunc {
	return withFiles(true, false, wantUnicode)
}

// WithUASTsAndContents supplies files carrying both UASTs and raw
// contents to a train entry point.
func WithUASTsAndContents(wantUnicode bool) func(TrainFunc) TrainFunc {
	return withFiles(true, true, wantUnicode)
}

// WithChangedUASTs supplies changes carrying only UASTs to an analyze
// entry point.
func WithChangedUASTs(wantUnicode bool) func(AnalyzeFunc) AnalyzeFunc {
	return withChanges(false, true, wantUnicode)
}

// WithChangedContents supplies changes carrying only raw contents to
// an analyze entry point.
func WithChangedContents(wantUnicode bool) func(AnalyzeFunc) AnalyzeFunc {
	return withChanges(true, false, wantUnicode)
}

// WithChangedUASTsAndContents supplies changes carrying both UASTs and
// raw contents to an analyze entry point.
func WithChangedUASTsAndContents(wantUnicode bool) func(AnalyzeFunc) AnalyzeFunc {
	return withChanges(true, true, wantUnicode)
}
