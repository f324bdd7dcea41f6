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
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// Requirements
// =============================================================================

// comparison operators, longest first so "==" wins over "=" prefixes.
var requirementOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// Requirement is one parsed driver version specifier, e.g.
// "javascript==1.3.0" or "python>=2.0.0".
type Requirement struct {
	// Language is the driver name.
	Language string

	// Op is one of ==, !=, >=, <=, >, <.
	Op string

	// Version is the required version, without "v" prefix.
	Version string
}

// String reassembles the specifier.
func (r Requirement) String() string {
	return r.Language + r.Op + r.Version
}

// ParseRequirement parses a "<language><op><version>" specifier.
//
// Malformed specifiers are a caller bug and fail immediately with
// ErrInvalidRequirement; they are not folded into the aggregate
// mismatch report.
func ParseRequirement(spec string) (Requirement, error) {
	for _, op := range requirementOps {
		idx := strings.Index(spec, op)
		if idx <= 0 {
			continue
		}
		req := Requirement{
			Language: spec[:idx],
			Op:       op,
			Version:  spec[idx+len(op):],
		}
		if req.Version == "" || !semver.IsValid(canonVersion(req.Version)) {
			return Requirement{}, fmt.Errorf("%w: %q", ErrInvalidRequirement, spec)
		}
		return req, nil
	}
	return Requirement{}, fmt.Errorf("%w: %q", ErrInvalidRequirement, spec)
}

// Satisfied reports whether the installed version meets the
// requirement. Unparseable installed versions never satisfy.
func (r Requirement) Satisfied(installed string) bool {
	v := canonVersion(installed)
	if !semver.IsValid(v) {
		return false
	}
	cmp := semver.Compare(v, canonVersion(r.Version))
	switch r.Op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	}
	return false
}

// canonVersion adds the "v" prefix semver.Compare expects.
func canonVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// =============================================================================
// Aggregate Mismatch Error
// =============================================================================

// DriverMismatch is one unmet driver requirement.
type DriverMismatch struct {
	// Language is the driver name from the requirement.
	Language string

	// Reason explains the mismatch, e.g. "not installed, but
	// required >=2.0.0" or "1.9.0 does not satisfy >=2.0.0".
	Reason string
}

// UnsatisfiedDriverVersionError aggregates every unmet requirement of
// one CheckDriverVersions call, so operators can fix all of them in
// one pass instead of iterating.
type UnsatisfiedDriverVersionError struct {
	// Mismatches lists every offending (language, reason) pair, in
	// requirement order.
	Mismatches []DriverMismatch
}

// Error enumerates all mismatches.
func (e *UnsatisfiedDriverVersionError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = m.Language + ": " + m.Reason
	}
	return "unsatisfied driver versions: " + strings.Join(parts, "; ")
}

// =============================================================================
// Version Check
// =============================================================================

// CheckDriverVersions ensures the installed language drivers match the
// required version specifiers.
//
// # Description
//
// Queries the parse service's SupportedLanguages endpoint once, builds
// a language-to-version map, and checks every requirement for presence
// and version satisfaction. The check never stops at the first
// mismatch: all unmet requirements are collected and returned as one
// *UnsatisfiedDriverVersionError.
//
// # Inputs
//
//   - ctx: Context bounding the capability query
//   - requirements: Specifiers like "javascript==1.3.0"
//
// # Outputs
//
//   - error: Nil when all requirements hold; *UnsatisfiedDriverVersionError
//     enumerating every mismatch; ErrInvalidRequirement for malformed
//     specifiers; transport failures propagate directly
func (s *DataService) CheckDriverVersions(ctx context.Context, requirements []string) error {
	stub, err := s.GetParse(ctx)
	if err != nil {
		return err
	}
	resp, err := stub.SupportedLanguages(ctx, &api.SupportedLanguagesRequest{})
	if err != nil {
		return err
	}

	installed := make(map[string]string, len(resp.Languages))
	for _, driver := range resp.Languages {
		installed[driver.Language] = driver.Version
	}

	var mismatched []DriverMismatch
	for _, spec := range requirements {
		req, err := ParseRequirement(spec)
		if err != nil {
			return err
		}
		version, ok := installed[req.Language]
		if !ok {
			mismatched = append(mismatched, DriverMismatch{
				Language: req.Language,
				Reason:   fmt.Sprintf("not installed, but required %s%s", req.Op, req.Version),
			})
			continue
		}
		if !req.Satisfied(version) {
			mismatched = append(mismatched, DriverMismatch{
				Language: req.Language,
				Reason:   fmt.Sprintf("%s does not satisfy %s%s", version, req.Op, req.Version),
			})
		}
	}
	if len(mismatched) > 0 {
		return &UnsatisfiedDriverVersionError{Mismatches: mismatched}
	}
	return nil
}
