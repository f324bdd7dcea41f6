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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcludedPath(t *testing.T) {
	tests := []struct {
		path     string
		excluded bool
	}{
		{"vendor/github.com/pkg/errors/errors.go", true},
		{"src/vendor/lib.js", true},
		{"node_modules/react/index.js", true},
		{".git/config", true},
		{"dist/app.js", true},
		{"app.min.js", true},
		{"styles.bundle.css", true},
		{"service.pb.go", true},
		{"notebook.ipynb", true},
		{"package-lock.json", true},
		{"frontend/yarn.lock", true},
		{"go.sum", true},
		{"go.mod", true},

		{"main.go", false},
		{"internal/server/server.go", false},
		{"vendors/catalog.go", false}, // "vendors" is not "vendor"
		{"distill/paper.md", false},
		{"minify.js", false},
		{"src/app.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.excluded, ExcludedPath(tt.path))
		})
	}
}

func TestFilterPaths(t *testing.T) {
	in := []string{
		"main.go",
		"vendor/dep/dep.go",
		"pkg/util/util.go",
		"bundle.min.js",
	}
	assert.Equal(t, []string{"main.go", "pkg/util/util.go"}, FilterPaths(in))
	assert.Empty(t, FilterPaths(nil))
}
