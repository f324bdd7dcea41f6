// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api defines the wire types and hand-written gRPC bindings for
// the remote Data and Parse services.
//
// The service descriptors mirror the shape protoc-gen-go-grpc would
// emit, but the messages are plain structs exchanged through the JSON
// codec (see codec.go). The schema is an internal contract of the SDK;
// callers outside services/data should treat it as opaque.
package api

// =============================================================================
// Revision Identity
// =============================================================================

// ReferencePointer identifies a single git reference to fetch data for.
//
// Immutable once constructed; supplied by the caller per request.
type ReferencePointer struct {
	// URL is the repository URL, e.g. "file:///work/repo" or
	// "https://github.com/org/repo".
	URL string `json:"url"`

	// Ref is the full reference name, e.g. "refs/heads/main".
	Ref string `json:"ref"`

	// Hash is the commit hash the reference resolves to.
	Hash string `json:"hash"`
}

// =============================================================================
// Syntax Trees
// =============================================================================

// Position locates a point inside a source file.
//
// Offset and Col are byte-based as delivered by the services. The
// runes converter (pkg/runes) derives copies with codepoint-based
// offsets when callers request unicode positions.
type Position struct {
	// Offset is the absolute position from the file start, 0-based.
	Offset uint32 `json:"offset"`

	// Line is the 1-based line number.
	Line uint32 `json:"line"`

	// Col is the 1-based column within the line.
	Col uint32 `json:"col"`
}

// Node is one node of a universal abstract syntax tree (UAST).
type Node struct {
	// InternalType is the driver-specific node type name.
	InternalType string `json:"internal_type,omitempty"`

	// Token is the source token this node represents, if any.
	Token string `json:"token,omitempty"`

	// Roles are the language-independent role annotations.
	Roles []string `json:"roles,omitempty"`

	// Properties holds driver-specific key/value annotations.
	Properties map[string]string `json:"properties,omitempty"`

	// Children are the child nodes in source order.
	Children []*Node `json:"children,omitempty"`

	// StartPosition is the position of the first character, nil when
	// the driver did not attach position info to this node.
	StartPosition *Position `json:"start_position,omitempty"`

	// EndPosition is the position just past the last character.
	EndPosition *Position `json:"end_position,omitempty"`
}

// =============================================================================
// File And Change Records
// =============================================================================

// File is one file at a given revision.
//
// Content, Language and UAST are populated only when the request asked
// for them. This layer never mutates a File; unicode conversion
// produces a derived copy.
type File struct {
	// Path is the file path relative to the repository root.
	Path string `json:"path"`

	// Content is the raw file content. Empty unless want_contents.
	Content []byte `json:"content,omitempty"`

	// Language is the detected language. Empty unless want_language.
	Language string `json:"language,omitempty"`

	// UAST is the parsed syntax tree. Nil unless want_uast.
	UAST *Node `json:"uast,omitempty"`

	// Hash is the git blob hash of the file.
	Hash string `json:"hash,omitempty"`
}

// Change is one modified, added or removed file between two revisions.
type Change struct {
	// Base is the file before the change. Nil for added files.
	Base *File `json:"base,omitempty"`

	// Head is the file after the change. Nil for removed files.
	Head *File `json:"head,omitempty"`
}

// Comment is an analyzer finding attached to a file and line.
//
// Defined here because the wrappers in services/data forward analyzer
// results; the analyzer contract itself lives outside this module.
type Comment struct {
	// File is the path the comment refers to. Empty for global comments.
	File string `json:"file,omitempty"`

	// Line is the 1-based line number. Zero for file-level comments.
	Line int32 `json:"line,omitempty"`

	// Text is the comment body.
	Text string `json:"text"`

	// Confidence is the analyzer's confidence in [0, 100].
	Confidence int32 `json:"confidence,omitempty"`
}

// =============================================================================
// Data Service Requests
// =============================================================================

// FilesRequest asks for the files of a single revision.
type FilesRequest struct {
	// Revision is the reference to list files from.
	Revision ReferencePointer `json:"revision"`

	// IncludePattern optionally restricts paths to a regex.
	IncludePattern string `json:"include_pattern,omitempty"`

	// ExcludePattern rejects paths matching a regex.
	ExcludePattern string `json:"exclude_pattern,omitempty"`

	// ExcludeVendored drops vendored paths server-side.
	ExcludeVendored bool `json:"exclude_vendored"`

	// WantContents requests raw file contents.
	WantContents bool `json:"want_contents"`

	// WantLanguage requests language detection.
	WantLanguage bool `json:"want_language"`

	// WantUAST requests parsed syntax trees.
	WantUAST bool `json:"want_uast"`
}

// ChangesRequest asks for the changed files between two revisions.
type ChangesRequest struct {
	// Base is the revision the diff starts from.
	Base ReferencePointer `json:"base"`

	// Head is the revision the diff ends at.
	Head ReferencePointer `json:"head"`

	// IncludePattern optionally restricts paths to a regex.
	IncludePattern string `json:"include_pattern,omitempty"`

	// ExcludePattern rejects paths matching a regex.
	ExcludePattern string `json:"exclude_pattern,omitempty"`

	// ExcludeVendored drops vendored paths server-side.
	ExcludeVendored bool `json:"exclude_vendored"`

	// WantContents requests raw file contents.
	WantContents bool `json:"want_contents"`

	// WantLanguage requests language detection.
	WantLanguage bool `json:"want_language"`

	// WantUAST requests parsed syntax trees.
	WantUAST bool `json:"want_uast"`
}

// =============================================================================
// Parse Service Messages
// =============================================================================

// ParseRequest asks the parse service for the UAST of one file.
type ParseRequest struct {
	// Filename is the base name of the file (no directory).
	Filename string `json:"filename"`

	// Content is the raw file content.
	Content []byte `json:"content"`

	// Language optionally names the language; the service
	// auto-detects when empty.
	Language string `json:"language,omitempty"`
}

// ParseError is one diagnostic produced while parsing.
//
// Parse errors are data, not RPC failures: a response may carry both a
// (possibly partial) tree and a non-empty error list.
type ParseError struct {
	// Text is the human-readable diagnostic.
	Text string `json:"text"`
}

// ParseResponse is the result of a ParseRequest.
type ParseResponse struct {
	// UAST is the parsed tree; may be partial when Errors is non-empty.
	UAST *Node `json:"uast,omitempty"`

	// Language is the detected or confirmed language.
	Language string `json:"language,omitempty"`

	// Errors are the parse diagnostics, empty on a clean parse.
	Errors []ParseError `json:"errors,omitempty"`
}

// SupportedLanguagesRequest asks for the installed driver manifest.
type SupportedLanguagesRequest struct{}

// DriverManifest describes one installed language driver.
type DriverManifest struct {
	// Language is the canonical language name, e.g. "python".
	Language string `json:"language"`

	// Version is the driver version, e.g. "2.9.2".
	Version string `json:"version"`
}

// SupportedLanguagesResponse lists every installed driver.
type SupportedLanguagesResponse struct {
	// Languages are the installed drivers.
	Languages []DriverManifest `json:"languages"`
}
