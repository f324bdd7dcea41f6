// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package runes converts byte-based source positions into
// codepoint-based ones.
//
// The data and parse services report file positions as byte offsets
// into the raw content. Analyzers that reason about text columns want
// unicode codepoint offsets instead. A Converter is seeded with the
// original content and rewrites the position fields of UAST nodes,
// files and changes, always producing derived copies; the inputs are
// never mutated.
//
// Conversion is pure and stateless beyond the precomputed index, so a
// Converter is safe for concurrent use.
package runes

import (
	"unicode/utf8"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// Converter rewrites byte offsets of one file's content into rune
// offsets.
type Converter struct {
	// byteToRune maps every byte offset 0..len(content) to the number
	// of runes that precede it. Offsets inside a multi-byte sequence
	// map to the rune that contains them.
	byteToRune []uint32
}

// NewConverter builds a converter for the given content.
//
// The index costs one uint32 per content byte; converters are meant to
// be short-lived, one per record being converted.
func NewConverter(content []byte) *Converter {
	index := make([]uint32, len(content)+1)
	var runes uint32
	for i := 0; i < len(content); {
		_, size := utf8.DecodeRune(content[i:])
		for j := 0; j < size; j++ {
			index[i+j] = runes
		}
		i += size
		runes++
	}
	index[len(content)] = runes
	return &Converter{byteToRune: index}
}

// RuneOffset converts a byte offset into a rune offset.
//
// Offsets past the end of the content clamp to the total rune count.
func (c *Converter) RuneOffset(byteOffset uint32) uint32 {
	if int(byteOffset) >= len(c.byteToRune) {
		return c.byteToRune[len(c.byteToRune)-1]
	}
	return c.byteToRune[byteOffset]
}

// ConvertPosition returns a copy of pos with Offset and Col converted
// to rune counts. Line numbers are unaffected by the encoding.
func (c *Converter) ConvertPosition(pos *api.Position) *api.Position {
	if pos == nil {
		return nil
	}
	out := *pos
	out.Offset = c.RuneOffset(pos.Offset)
	if pos.Col > 0 {
		// Col is 1-based; the line start lies Col-1 bytes before Offset.
		lineStart := uint32(0)
		if pos.Offset >= pos.Col-1 {
			lineStart = pos.Offset - (pos.Col - 1)
		}
		out.Col = out.Offset - c.RuneOffset(lineStart) + 1
	}
	return &out
}

// ConvertNode returns a deep copy of root with every position
// converted. A nil root yields nil.
func (c *Converter) ConvertNode(root *api.Node) *api.Node {
	if root == nil {
		return nil
	}
	out := *root
	out.StartPosition = c.ConvertPosition(root.StartPosition)
	out.EndPosition = c.ConvertPosition(root.EndPosition)
	if len(root.Children) > 0 {
		out.Children = make([]*api.Node, len(root.Children))
		for i, child := range root.Children {
			out.Children[i] = c.ConvertNode(child)
		}
	}
	return &out
}

// ConvertFile returns a copy of f with UAST positions converted using
// f's own content as the byte-to-codepoint map. Files without a UAST
// are copied unchanged.
func ConvertFile(f *api.File) *api.File {
	if f == nil {
		return nil
	}
	out := *f
	if f.UAST != nil {
		out.UAST = NewConverter(f.Content).ConvertNode(f.UAST)
	}
	return &out
}

// ConvertChange returns a copy of ch with both sides converted, each
// against its own content.
func ConvertChange(ch *api.Change) *api.Change {
	if ch == nil {
		return nil
	}
	return &api.Change{
		Base: ConvertFile(ch.Base),
		Head: ConvertFile(ch.Head),
	}
}
