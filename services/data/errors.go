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

import "errors"

// Sentinel errors for the data package.
var (
	// ErrServiceClosed indicates a call after Shutdown. Using a
	// DataService past its lifecycle is a programming error and fails
	// loudly rather than silently reconnecting.
	ErrServiceClosed = errors.New("data service is shut down")

	// ErrInvalidRequirement indicates an unparseable driver version
	// requirement string.
	ErrInvalidRequirement = errors.New("invalid driver version requirement")
)
