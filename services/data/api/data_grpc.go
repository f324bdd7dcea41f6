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
	"context"

	"google.golang.org/grpc"
)

// Data service method names.
const (
	DataGetFilesMethod   = "/analyzerkit.v1.Data/GetFiles"
	DataGetChangesMethod = "/analyzerkit.v1.Data/GetChanges"
)

// =============================================================================
// Client
// =============================================================================

// DataClient is the client surface of the remote Data service.
//
// Both methods open server-streaming calls: the returned stream is a
// lazy, single-pass, forward-only sequence backed by the transport.
// Iteration blocks the calling goroutine until the next record, the
// end of stream (io.EOF), or a transport failure arrives.
type DataClient interface {
	// GetFiles streams the files of one revision.
	GetFiles(ctx context.Context, in *FilesRequest, opts ...grpc.CallOption) (Data_GetFilesClient, error)

	// GetChanges streams the changed files between two revisions.
	GetChanges(ctx context.Context, in *ChangesRequest, opts ...grpc.CallOption) (Data_GetChangesClient, error)
}

// Data_GetFilesClient is the receive side of a GetFiles call.
type Data_GetFilesClient interface {
	// Recv returns the next file, or io.EOF at end of stream.
	Recv() (*File, error)
	grpc.ClientStream
}

// Data_GetChangesClient is the receive side of a GetChanges call.
type Data_GetChangesClient interface {
	// Recv returns the next change, or io.EOF at end of stream.
	Recv() (*Change, error)
	grpc.ClientStream
}

type dataClient struct {
	cc grpc.ClientConnInterface
}

// NewDataClient derives a Data service client from a connection.
func NewDataClient(cc grpc.ClientConnInterface) DataClient {
	return &dataClient{cc: cc}
}

func (c *dataClient) GetFiles(ctx context.Context, in *FilesRequest, opts ...grpc.CallOption) (Data_GetFilesClient, error) {
	stream, err := c.cc.NewStream(ctx, &dataServiceDesc.Streams[0], DataGetFilesMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &dataGetFilesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type dataGetFilesClient struct {
	grpc.ClientStream
}

func (x *dataGetFilesClient) Recv() (*File, error) {
	m := new(File)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *dataClient) GetChanges(ctx context.Context, in *ChangesRequest, opts ...grpc.CallOption) (Data_GetChangesClient, error) {
	stream, err := c.cc.NewStream(ctx, &dataServiceDesc.Streams[1], DataGetChangesMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &dataGetChangesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type dataGetChangesClient struct {
	grpc.ClientStream
}

func (x *dataGetChangesClient) Recv() (*Change, error) {
	m := new(Change)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// =============================================================================
// Server
// =============================================================================

// DataServer is the server surface of the Data service.
//
// Implemented by the production data service and by in-process fakes
// in tests; this SDK only registers it for loopback testing.
type DataServer interface {
	// GetFiles streams the files of one revision.
	GetFiles(*FilesRequest, Data_GetFilesServer) error

	// GetChanges streams the changed files between two revisions.
	GetChanges(*ChangesRequest, Data_GetChangesServer) error
}

// Data_GetFilesServer is the send side of a GetFiles call.
type Data_GetFilesServer interface {
	Send(*File) error
	grpc.ServerStream
}

// Data_GetChangesServer is the send side of a GetChanges call.
type Data_GetChangesServer interface {
	Send(*Change) error
	grpc.ServerStream
}

type dataGetFilesServer struct {
	grpc.ServerStream
}

func (x *dataGetFilesServer) Send(m *File) error {
	return x.ServerStream.SendMsg(m)
}

type dataGetChangesServer struct {
	grpc.ServerStream
}

func (x *dataGetChangesServer) Send(m *Change) error {
	return x.ServerStream.SendMsg(m)
}

func dataGetFilesHandler(srv any, stream grpc.ServerStream) error {
	m := new(FilesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DataServer).GetFiles(m, &dataGetFilesServer{stream})
}

func dataGetChangesHandler(srv any, stream grpc.ServerStream) error {
	m := new(ChangesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DataServer).GetChanges(m, &dataGetChangesServer{stream})
}

// dataServiceDesc is the hand-written service descriptor. It mirrors
// the shape protoc-gen-go-grpc would emit for the same service.
var dataServiceDesc = grpc.ServiceDesc{
	ServiceName: "analyzerkit.v1.Data",
	HandlerType: (*DataServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetFiles",
			Handler:       dataGetFilesHandler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetChanges",
			Handler:       dataGetChangesHandler,
			ServerStreams: true,
		},
	},
}

// RegisterDataServer registers a DataServer implementation with s.
func RegisterDataServer(s grpc.ServiceRegistrar, srv DataServer) {
	s.RegisterService(&dataServiceDesc, srv)
}
