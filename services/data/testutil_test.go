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
	"net"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/AleutianAI/analyzerkit/services/data/api"
)

// =============================================================================
// Fake Servers
// =============================================================================

// fakeDataServer serves canned files/changes and records every request
// it sees. failErr, when set, is returned after failAfter records.
type fakeDataServer struct {
	mu          sync.Mutex
	files       []*api.File
	changes     []*api.Change
	failAfter   int
	failErr     error
	filesReqs   []*api.FilesRequest
	changesReqs []*api.ChangesRequest
}

func (s *fakeDataServer) GetFiles(req *api.FilesRequest, stream api.Data_GetFilesServer) error {
	s.mu.Lock()
	s.filesReqs = append(s.filesReqs, req)
	files, failAfter, failErr := s.files, s.failAfter, s.failErr
	s.mu.Unlock()

	for i, f := range files {
		if failErr != nil && i == failAfter {
			return failErr
		}
		if err := stream.Send(f); err != nil {
			return err
		}
	}
	if failErr != nil && failAfter >= len(files) {
		return failErr
	}
	return nil
}

func (s *fakeDataServer) GetChanges(req *api.ChangesRequest, stream api.Data_GetChangesServer) error {
	s.mu.Lock()
	s.changesReqs = append(s.changesReqs, req)
	changes, failAfter, failErr := s.changes, s.failAfter, s.failErr
	s.mu.Unlock()

	for i, ch := range changes {
		if failErr != nil && i == failAfter {
			return failErr
		}
		if err := stream.Send(ch); err != nil {
			return err
		}
	}
	if failErr != nil && failAfter >= len(changes) {
		return failErr
	}
	return nil
}

func (s *fakeDataServer) lastFilesReq() *api.FilesRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.filesReqs) == 0 {
		return nil
	}
	return s.filesReqs[len(s.filesReqs)-1]
}

func (s *fakeDataServer) lastChangesReq() *api.ChangesRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.changesReqs) == 0 {
		return nil
	}
	return s.changesReqs[len(s.changesReqs)-1]
}

// fakeParseServer answers parse and capability requests with canned
// responses.
type fakeParseServer struct {
	mu        sync.Mutex
	resp      *api.ParseResponse
	drivers   []api.DriverManifest
	err       error
	parseReqs []*api.ParseRequest
}

func (s *fakeParseServer) Parse(ctx context.Context, req *api.ParseRequest) (*api.ParseResponse, error) {
	s.mu.Lock()
	s.parseReqs = append(s.parseReqs, req)
	resp, err := s.resp, s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &api.ParseResponse{}, nil
	}
	return resp, nil
}

func (s *fakeParseServer) SupportedLanguages(ctx context.Context, req *api.SupportedLanguagesRequest) (*api.SupportedLanguagesResponse, error) {
	s.mu.Lock()
	drivers, err := s.drivers, s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &api.SupportedLanguagesResponse{Languages: drivers}, nil
}

func (s *fakeParseServer) lastParseReq() *api.ParseRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.parseReqs) == 0 {
		return nil
	}
	return s.parseReqs[len(s.parseReqs)-1]
}

// =============================================================================
// Loopback Service
// =============================================================================

// newTestService spins up an in-process loopback server with the given
// fakes and returns a DataService dialing it over bufconn.
func newTestService(t *testing.T, fd *fakeDataServer, fp *fakeParseServer) *DataService {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	if fd != nil {
		api.RegisterDataServer(srv, fd)
	}
	if fp != nil {
		api.RegisterParseServer(srv, fp)
	}
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	ds := NewDataService("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	t.Cleanup(ds.Shutdown)
	return ds
}

// testSlot exposes a worker's slot for assertions.
func (s *DataService) testSlot(worker string) *channelSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[worker]
}

// testRegistrySize exposes the number of open channels.
func (s *DataService) testRegistrySize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.registry)
}
