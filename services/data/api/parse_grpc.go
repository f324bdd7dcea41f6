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

// Parse service method names.
const (
	ParseParseMethod              = "/analyzerkit.v1.Parse/Parse"
	ParseSupportedLanguagesMethod = "/analyzerkit.v1.Parse/SupportedLanguages"
)

// =============================================================================
// Client
// =============================================================================

// ParseClient is the client surface of the remote Parse service.
//
// Both methods are unary and block the calling goroutine until the
// response or a transport failure arrives.
type ParseClient interface {
	// Parse returns the UAST and diagnostics for one file.
	Parse(ctx context.Context, in *ParseRequest, opts ...grpc.CallOption) (*ParseResponse, error)

	// SupportedLanguages lists the installed language drivers.
	SupportedLanguages(ctx context.Context, in *SupportedLanguagesRequest, opts ...grpc.CallOption) (*SupportedLanguagesResponse, error)
}

type parseClient struct {
	cc grpc.ClientConnInterface
}

// NewParseClient derives a Parse service client from a connection.
func NewParseClient(cc grpc.ClientConnInterface) ParseClient {
	return &parseClient{cc: cc}
}

func (c *parseClient) Parse(ctx context.Context, in *ParseRequest, opts ...grpc.CallOption) (*ParseResponse, error) {
	out := new(ParseResponse)
	if err := c.cc.Invoke(ctx, ParseParseMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *parseClient) SupportedLanguages(ctx context.Context, in *SupportedLanguagesRequest, opts ...grpc.CallOption) (*SupportedLanguagesResponse, error) {
	out := new(SupportedLanguagesResponse)
	if err := c.cc.Invoke(ctx, ParseSupportedLanguagesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Server
// =============================================================================

// ParseServer is the server surface of the Parse service.
type ParseServer interface {
	// Parse returns the UAST and diagnostics for one file.
	Parse(context.Context, *ParseRequest) (*ParseResponse, error)

	// SupportedLanguages lists the installed language drivers.
	SupportedLanguages(context.Context, *SupportedLanguagesRequest) (*SupportedLanguagesResponse, error)
}

func parseParseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ParseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParseServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ParseParseMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ParseServer).Parse(ctx, req.(*ParseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func parseSupportedLanguagesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SupportedLanguagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParseServer).SupportedLanguages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ParseSupportedLanguagesMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ParseServer).SupportedLanguages(ctx, req.(*SupportedLanguagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// parseServiceDesc is the hand-written service descriptor for Parse.
var parseServiceDesc = grpc.ServiceDesc{
	ServiceName: "analyzerkit.v1.Parse",
	HandlerType: (*ParseServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parse",
			Handler:    parseParseHandler,
		},
		{
			MethodName: "SupportedLanguages",
			Handler:    parseSupportedLanguagesHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterParseServer registers a ParseServer implementation with s.
func RegisterParseServer(s grpc.ServiceRegistrar, srv ParseServer) {
	s.RegisterService(&parseServiceDesc, srv)
}
