// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analysis provides helpers for analyzers working with the
// file and change records delivered by services/data: line-level diff
// classification, changed-node extraction and language bucketing.
package analysis

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// splitContent decodes file content into lines for diff matching.
//
// A trailing line terminator ends the last line rather than starting
// an empty one, so a newline-terminated file has exactly as many lines
// as terminators. Line numbers derived from the opcodes would
// otherwise point past the end of the file.
func splitContent(f *api.File) []string {
	if f == nil || len(f.Content) == 0 {
		return nil
	}
	lines := strings.Split(string(f.Content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// FindNewLines returns the 1-based line numbers of after that were
// added or replaced relative to before.
//
// Both files need their raw contents; records fetched without
// want_contents yield an empty result.
func FindNewLines(before, after *api.File) []int {
	matcher := difflib.NewMatcher(splitContent(before), splitContent(after))
	var result []int
	for _, op := range matcher.GetOpCodes() {
		// 'e' equal and 'd' delete leave no new lines in after.
		if op.Tag == 'e' || op.Tag == 'd' {
			continue
		}
		for line := op.J1 + 1; line <= op.J2; line++ {
			result = append(result, line)
		}
	}
	return result
}

// FindDeletedLines returns the 1-based line numbers of after adjacent
// to runs of lines deleted from before. The deleted text itself no
// longer exists in after, so its neighbors are the closest anchors an
// analyzer can comment on.
func FindDeletedLines(before, after *api.File) []int {
	afterLines := splitContent(after)
	matcher := difflib.NewMatcher(splitContent(before), afterLines)
	var result []int
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'd' {
			continue
		}
		if op.J1 != 0 {
			result = append(result, op.J1)
		}
		if op.J1 != len(afterLines) {
			result = append(result, op.J1+1)
		}
	}
	return result
}

// ExtractChangedNodes collects the UAST nodes that start on one of the
// given 1-based lines. An empty lines slice selects every positioned
// node. Nodes without a start position are skipped but their children
// are still visited.
func ExtractChangedNodes(root *api.Node, lines []int) []*api.Node {
	if root == nil {
		return nil
	}
	wanted := make(map[uint32]bool, len(lines))
	for _, line := range lines {
		wanted[uint32(line)] = true
	}
	var result []*api.Node
	queue := []*api.Node{root}
	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		queue = append(queue, node.Children...)
		if node.StartPosition == nil {
			continue
		}
		if len(wanted) == 0 || wanted[node.StartPosition.Line] {
			result = append(result, node)
		}
	}
	return result
}

// FilesByLanguage buckets files by lowercased language and then by
// path. Files without a populated UAST are dropped, matching the
// convention that only parseable files are analyzable.
func FilesByLanguage(files []*api.File) map[string]map[string]*api.File {
	result := make(map[string]map[string]*api.File)
	for _, f := range files {
		if f == nil || f.UAST == nil || len(f.UAST.Children) == 0 {
			continue
		}
		lang := strings.ToLower(f.Language)
		byPath, ok := result[lang]
		if !ok {
			byPath = make(map[string]*api.File)
			result[lang] = byPath
		}
		byPath[f.Path] = f
	}
	return result
}
