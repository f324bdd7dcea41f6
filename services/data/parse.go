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
	"path/filepath"

	"github.com/AleutianAI/analyzerkit/pkg/runes"
	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// ParseCode fetches the UAST for the given file content and name.
//
// # Description
//
// Issues a single unary parse request with the file's base name
// (directory stripped), the raw content and an optional language
// hint; the service auto-detects the language when the hint is empty.
//
// Parse errors are data, not failures: a syntactically invalid file
// still yields a (possibly partial) tree together with a non-empty
// diagnostics list, and the returned error stays nil. Only transport
// failures produce an error.
//
// With wantUnicode the returned tree's positions are converted to
// codepoint offsets using the original content as the
// byte-to-codepoint map.
//
// # Inputs
//
//   - ctx: Context bounding the call
//   - stub: Parse stub for the calling worker (see DataService.GetParse)
//   - code: Raw file content
//   - filename: File name, may be a full path
//   - wantUnicode: Convert tree positions to codepoint offsets
//   - language: Optional language hint, empty for auto-detection
//
// # Outputs
//
//   - *api.Node: The parsed tree, possibly partial, nil on transport failure
//   - []api.ParseError: Parse diagnostics, empty on a clean parse
//   - error: Non-nil only for transport failures
func ParseCode(ctx context.Context, stub api.ParseClient, code []byte, filename string,
	wantUnicode bool, language string) (*api.Node, []api.ParseError, error) {
	req := &api.ParseRequest{
		Filename: filepath.Base(filename),
		Content:  code,
		Language: language,
	}
	resp, err := stub.Parse(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	uast := resp.UAST
	if wantUnicode && uast != nil {
		uast = runes.NewConverter(code).ConvertNode(uast)
	}
	return uast, resp.Errors, nil
}
