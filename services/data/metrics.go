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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Channel lifecycle and failure counters. Registered on the default
// registry; hosts that expose /metrics pick them up automatically.
var (
	channelOpens = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "analyzerkit",
		Subsystem: "data",
		Name:      "channel_opens_total",
		Help:      "Number of gRPC channels opened by DataService.",
	})

	channelCloses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "analyzerkit",
		Subsystem: "data",
		Name:      "channel_closes_total",
		Help:      "Number of gRPC channels closed, including shutdown.",
	})

	rpcFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "analyzerkit",
		Subsystem: "data",
		Name:      "rpc_failures_total",
		Help:      "Number of RPC failures that invalidated a channel.",
	})
)
