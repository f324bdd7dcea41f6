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

import "regexp"

// GarbagePattern rejects generated, vendored and otherwise useless
// paths. It is attached to every files/changes request and is not
// configurable by callers of this layer; analyzers that need a
// different policy must filter on their own side.
const GarbagePattern = `(^|/)(\.git|\.hg|\.svn|node_modules|bower_components|vendor|third_party|dist|out|build|target)(/|$)` +
	`|(-|\.)(min|bundle|lock)\.(js|css)$` +
	`|\.(pb\.go|pb\.py|ipynb|map|sum|mod)$` +
	`|(^|/)(package-lock\.json|yarn\.lock|Gopkg\.lock|go\.sum)$`

var garbageRegexp = regexp.MustCompile(GarbagePattern)

// ExcludedPath reports whether path falls under the fixed exclusion
// policy.
func ExcludedPath(path string) bool {
	return garbageRegexp.MatchString(path)
}

// FilterPaths drops the paths matching the fixed exclusion policy.
//
// Mirrors what the data service does server-side; useful when an
// analyzer walks a local checkout instead.
func FilterPaths(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if ExcludedPath(p) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
