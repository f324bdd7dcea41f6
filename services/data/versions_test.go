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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		spec    string
		want    Requirement
		wantErr bool
	}{
		{spec: "javascript==1.3.0", want: Requirement{"javascript", "==", "1.3.0"}},
		{spec: "python>=2.0.0", want: Requirement{"python", ">=", "2.0.0"}},
		{spec: "go<=1.0.0", want: Requirement{"go", "<=", "1.0.0"}},
		{spec: "ruby>0.9.0", want: Requirement{"ruby", ">", "0.9.0"}},
		{spec: "java<11.0.0", want: Requirement{"java", "<", "11.0.0"}},
		{spec: "rust!=1.0.0", want: Requirement{"rust", "!=", "1.0.0"}},
		{spec: "python", wantErr: true},
		{spec: ">=1.0.0", wantErr: true},
		{spec: "python>=", wantErr: true},
		{spec: "python>=banana", wantErr: true},
		{spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseRequirement(tt.spec)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRequirement)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.spec, got.String())
		})
	}
}

func TestRequirementSatisfied(t *testing.T) {
	tests := []struct {
		req       string
		installed string
		want      bool
	}{
		{"python==2.0.0", "2.0.0", true},
		{"python==2.0.0", "2.0.1", false},
		{"python!=2.0.0", "2.0.1", true},
		{"python>=2.0.0", "2.0.0", true},
		{"python>=2.0.0", "1.9.0", false},
		{"python>=2.0.0", "10.0.0", true}, // numeric, not lexical
		{"python<=2.0.0", "2.0.0", true},
		{"python<=2.0.0", "2.0.1", false},
		{"python>2.0.0", "2.0.0", false},
		{"python<2.0.0", "1.9.9", true},
		{"python==2.0.0", "v2.0.0", true}, // installed may carry a v prefix
		{"python>=2.0.0", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.req+" vs "+tt.installed, func(t *testing.T) {
			req, err := ParseRequirement(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Satisfied(tt.installed))
		})
	}
}

func TestCheckDriverVersionsAllSatisfied(t *testing.T) {
	fp := &fakeParseServer{drivers: []api.DriverManifest{
		{Language: "python", Version: "2.1.0"},
		{Language: "go", Version: "1.0.0"},
	}}
	ds := newTestService(t, nil, fp)

	err := ds.CheckDriverVersions(context.Background(),
		[]string{"python>=2.0.0", "go==1.0.0"})
	require.NoError(t, err)
}

func TestCheckDriverVersionsAggregatesEveryMismatch(t *testing.T) {
	fp := &fakeParseServer{drivers: []api.DriverManifest{
		{Language: "python", Version: "1.9.0"},
	}}
	ds := newTestService(t, nil, fp)

	err := ds.CheckDriverVersions(context.Background(),
		[]string{"python>=2.0.0", "go==1.0.0"})
	require.Error(t, err)

	var unsatisfied *UnsatisfiedDriverVersionError
	require.ErrorAs(t, err, &unsatisfied)
	require.Len(t, unsatisfied.Mismatches, 2, "one mismatch must not hide the other")

	assert.Equal(t, "python", unsatisfied.Mismatches[0].Language)
	assert.Equal(t, "1.9.0 does not satisfy >=2.0.0", unsatisfied.Mismatches[0].Reason)
	assert.Equal(t, "go", unsatisfied.Mismatches[1].Language)
	assert.Equal(t, "not installed, but required ==1.0.0", unsatisfied.Mismatches[1].Reason)

	// The message mentions both drivers.
	assert.Contains(t, err.Error(), "python")
	assert.Contains(t, err.Error(), "go")
}

func TestCheckDriverVersionsEmptyRequirements(t *testing.T) {
	fp := &fakeParseServer{}
	ds := newTestService(t, nil, fp)

	// Nothing required, nothing to violate.
	require.NoError(t, ds.CheckDriverVersions(context.Background(), nil))
}

func TestCheckDriverVersionsMalformedSpecFailsFast(t *testing.T) {
	fp := &fakeParseServer{drivers: []api.DriverManifest{
		{Language: "python", Version: "2.0.0"},
	}}
	ds := newTestService(t, nil, fp)

	err := ds.CheckDriverVersions(context.Background(),
		[]string{"python>=2.0.0", "not-a-spec"})
	require.ErrorIs(t, err, ErrInvalidRequirement)

	var unsatisfied *UnsatisfiedDriverVersionError
	assert.False(t, errors.As(err, &unsatisfied),
		"caller bugs must not masquerade as version mismatches")
}
