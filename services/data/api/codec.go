// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype under which the JSON codec is
// registered. Clients must dial with
// grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName))
// so every call on the connection negotiates this codec; servers pick
// it up automatically from the codec registry.
const CodecName = "json"

// jsonCodec implements grpc encoding.Codec over encoding/json.
//
// The wire surface of this module is an internal contract between the
// SDK and the data/parse services, not a public protobuf schema. A
// JSON codec keeps the message types plain Go structs and removes the
// protoc toolchain from the build entirely.
type jsonCodec struct{}

// Marshal encodes v as JSON.
func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes data into v.
func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name returns the registered codec name.
func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
