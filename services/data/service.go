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
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// Worker Identity
// =============================================================================

// workerKeyType keys the worker identity in a context.
type workerKeyType struct{}

// defaultWorker is the slot used when the context carries no worker
// identity. Single-goroutine callers never need WithWorker.
const defaultWorker = "main"

// WithWorker returns a context carrying the given worker identity.
//
// # Description
//
// Channels are worker-affined: every distinct worker id owns its own
// channel and stub pair, and a channel is never handed across workers.
// Hosts that call analyzers from a pool of goroutines should derive
// one worker context per goroutine and pass it through every call.
//
// # Inputs
//
//   - ctx: Parent context
//   - id: Worker identity; empty falls back to the default slot
//
// # Outputs
//
//   - context.Context: Context carrying the worker identity
func WithWorker(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, workerKeyType{}, id)
}

// workerID extracts the worker identity from ctx.
func workerID(ctx context.Context) string {
	if id, ok := ctx.Value(workerKeyType{}).(string); ok && id != "" {
		return id
	}
	return defaultWorker
}

// =============================================================================
// Channel Slot
// =============================================================================

// channelSlot is one worker's channel and the stubs derived from it.
//
// Invariant: a slot is either absent from the slot map or fully
// populated. Callers never observe a channel without its stubs.
type channelSlot struct {
	// id identifies the channel for logs and tests.
	id string

	// conn is the gRPC channel to the configured endpoint.
	conn *grpc.ClientConn

	// dataStub is the Data service client bound to conn.
	dataStub api.DataClient

	// parseStub is the Parse service client bound to conn.
	parseStub api.ParseClient
}

// =============================================================================
// DataService
// =============================================================================

// DataService retrieves UASTs, file contents and changes from the
// remote data/parse endpoint.
//
// # Description
//
// One DataService exists per analyzer manager. It lazily opens one
// gRPC channel per worker on first use, derives the data and parse
// stubs from it, and tears the worker's channel down when an RPC on
// it fails (see handlers.go) or on Shutdown.
//
// # Thread Safety
//
// Safe for concurrent use. The slot map and the registry of open
// channels are guarded by a single mutex; the channel inside a slot is
// exclusively owned by its worker and needs no further locking.
//
// # Limitations
//
//   - No automatic retry: a failed RPC only invalidates the channel so
//     the next call can succeed.
//   - No cancellation surface beyond CloseChannel; closing the channel
//     invalidates any stream already obtained from it.
type DataService struct {
	// address is the gRPC endpoint, immutable after construction.
	address string

	// dialOpts are the options applied to every new channel.
	dialOpts []grpc.DialOption

	// mu guards slots, registry and closed.
	mu sync.Mutex

	// slots holds at most one live channel per worker.
	slots map[string]*channelSlot

	// registry tracks every open channel by slot id. It is the source
	// of truth for Shutdown and outlives workers that exit without
	// closing their channel.
	registry map[string]*grpc.ClientConn

	// closed flips on Shutdown; further use fails with
	// ErrServiceClosed.
	closed bool
}

// NewDataService creates a DataService for the given endpoint.
//
// # Description
//
// No channel is opened yet; channels appear lazily per worker on the
// first GetData/GetParse call. Extra dial options are appended after
// the defaults (insecure transport, JSON codec) and may override them.
//
// # Inputs
//
//   - address: gRPC endpoint, e.g. "localhost:10301"
//   - opts: Additional grpc.DialOption values, mainly for tests
//
// # Outputs
//
//   - *DataService: Ready-to-use service; close with Shutdown
func NewDataService(address string, opts ...grpc.DialOption) *DataService {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}
	dialOpts = append(dialOpts, opts...)
	return &DataService{
		address:  address,
		dialOpts: dialOpts,
		slots:    make(map[string]*channelSlot),
		registry: make(map[string]*grpc.ClientConn),
	}
}

// String summarizes the service for logs.
func (s *DataService) String() string {
	return fmt.Sprintf("DataService(%s)", s.address)
}

// GetData returns the Data service stub for the calling worker,
// opening the worker's channel on first use.
//
// The returned stub is never bound to a closed channel at the time of
// return; a concurrent CloseChannel from the same worker would violate
// the worker-affinity contract.
func (s *DataService) GetData(ctx context.Context) (api.DataClient, error) {
	slot, err := s.getSlot(ctx)
	if err != nil {
		return nil, err
	}
	return slot.dataStub, nil
}

// GetParse returns the Parse service stub for the calling worker,
// opening the worker's channel on first use.
func (s *DataService) GetParse(ctx context.Context) (api.ParseClient, error) {
	slot, err := s.getSlot(ctx)
	if err != nil {
		return nil, err
	}
	return slot.parseStub, nil
}

// CloseChannel closes and discards the calling worker's channel and
// both derived stubs.
//
// # Description
//
// No-op when the worker has no open channel, so it is safe to call
// from the failure path of any in-flight RPC. The channel is removed
// from the registry before it is closed, keeping the "closed exactly
// once" property even if Shutdown races with the failure path.
func (s *DataService) CloseChannel(ctx context.Context) {
	worker := workerID(ctx)

	s.mu.Lock()
	slot, ok := s.slots[worker]
	if ok {
		delete(s.slots, worker)
		delete(s.registry, slot.id)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	s.closeConn(slot.id, slot.conn)
	slog.Info("Disposed channel", "service", s.String(), "channel", slot.id, "worker", worker)
}

// Shutdown closes every channel in the registry, including those
// opened by workers that have since exited, then clears all per-worker
// state.
//
// # Description
//
// Intended for process or test teardown. Idempotent: a second call
// finds an empty registry and closes nothing. After Shutdown every
// further GetData/GetParse fails with ErrServiceClosed.
func (s *DataService) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	conns := s.registry
	s.registry = make(map[string]*grpc.ClientConn)
	s.slots = make(map[string]*channelSlot)
	s.mu.Unlock()

	slog.Info("Shutting down", "service", s.String(), "channels", len(conns))
	for id, conn := range conns {
		s.closeConn(id, conn)
	}
}

// getSlot returns the calling worker's slot, creating the channel and
// both stubs on first use. Channel creation failures propagate
// directly; nothing is recorded for the worker in that case.
func (s *DataService) getSlot(ctx context.Context) (*channelSlot, error) {
	worker := workerID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("%w: %s", ErrServiceClosed, s.address)
	}
	if slot, ok := s.slots[worker]; ok {
		return slot, nil
	}

	conn, err := grpc.NewClient(s.address, s.dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("open channel to %s: %w", s.address, err)
	}
	slot := &channelSlot{
		id:        uuid.NewString(),
		conn:      conn,
		dataStub:  api.NewDataClient(conn),
		parseStub: api.NewParseClient(conn),
	}
	s.slots[worker] = slot
	s.registry[slot.id] = conn
	channelOpens.Inc()
	slog.Info("Opened channel", "service", s.String(), "channel", slot.id, "worker", worker)
	return slot, nil
}

// closeConn closes one channel and counts it.
func (s *DataService) closeConn(id string, conn *grpc.ClientConn) {
	if err := conn.Close(); err != nil {
		slog.Warn("Channel close error", "channel", id, "error", err)
	}
	channelCloses.Inc()
}
