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

	"github.com/AleutianAI/analyzerkit/pkg/runes"
	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// Streams
// =============================================================================

// FileStream is a lazy, single-pass, forward-only sequence of files.
//
// Next blocks until the next record, io.EOF at end of stream, or a
// transport failure arrives. A stream is not restartable and must not
// be shared across workers; once the underlying channel is closed,
// further reads fail.
type FileStream struct {
	recv func() (*api.File, error)
}

// Next returns the next file, or io.EOF at end of stream.
func (s *FileStream) Next() (*api.File, error) {
	return s.recv()
}

// ChangeStream is a lazy, single-pass, forward-only sequence of
// changes with the same contract as FileStream.
type ChangeStream struct {
	recv func() (*api.Change, error)
}

// Next returns the next change, or io.EOF at end of stream.
func (s *ChangeStream) Next() (*api.Change, error) {
	return s.recv()
}

// =============================================================================
// Request Composition
// =============================================================================

// RequestFiles issues a streaming files request for one revision.
//
// # Description
//
// The request carries the fixed exclusion policy and the want flags;
// want_language is derived as contents OR uast, since language
// detection is only useful when one of the two is fetched. Asking for
// neither is legal and yields metadata-only records.
//
// With wantUnicode, every record is converted through the runes
// converter as it is pulled; conversion is per element and never
// forces the stream to materialize.
//
// # Inputs
//
//   - ctx: Context bounding the streaming call
//   - stub: Data stub for the calling worker (see DataService.GetData)
//   - ptr: Revision to fetch files from
//   - contents, uast, wantUnicode: Option flags
//
// # Outputs
//
//   - *FileStream: Lazy record sequence
//   - error: Non-nil if the call could not be opened
func RequestFiles(ctx context.Context, stub api.DataClient, ptr api.ReferencePointer,
	contents, uast, wantUnicode bool) (*FileStream, error) {
	req := &api.FilesRequest{
		Revision:        ptr,
		ExcludePattern:  GarbagePattern,
		ExcludeVendored: true,
		WantContents:    contents,
		WantLanguage:    contents || uast,
		WantUAST:        uast,
	}
	stream, err := stub.GetFiles(ctx, req)
	if err != nil {
		return nil, err
	}
	recv := stream.Recv
	if wantUnicode {
		recv = func() (*api.File, error) {
			f, err := stream.Recv()
			if err != nil {
				return nil, err
			}
			return runes.ConvertFile(f), nil
		}
	}
	return &FileStream{recv: recv}, nil
}

// RequestChanges issues a streaming changes request for a revision
// pair.
//
// Identical in shape to RequestFiles, operating on (base, head) and
// yielding changes. The call stays streaming end to end: collecting
// the full result up front has been observed to stall on the
// underlying transport, so no buffering variant is offered.
func RequestChanges(ctx context.Context, stub api.DataClient, base, head api.ReferencePointer,
	contents, uast, wantUnicode bool) (*ChangeStream, error) {
	req := &api.ChangesRequest{
		Base:            base,
		Head:            head,
		ExcludePattern:  GarbagePattern,
		ExcludeVendored: true,
		WantContents:    contents,
		WantLanguage:    contents || uast,
		WantUAST:        uast,
	}
	stream, err := stub.GetChanges(ctx, req)
	if err != nil {
		return nil, err
	}
	recv := stream.Recv
	if wantUnicode {
		recv = func() (*api.Change, error) {
			ch, err := stream.Recv()
			if err != nil {
				return nil, err
			}
			return runes.ConvertChange(ch), nil
		}
	}
	return &ChangeStream{recv: recv}, nil
}
