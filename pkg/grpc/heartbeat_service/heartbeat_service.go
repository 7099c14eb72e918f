// Package heartbeat_service describes the iot.heartbeat.v1.HeartbeatService gRPC service.
//
// Messages are protobuf well-known types: heartbeats and device snapshots travel as
// google.protobuf.Struct with the same keys as the HTTP JSON bodies, device ids as
// google.protobuf.StringValue.
package heartbeat_service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "iot.heartbeat.v1.HeartbeatService"

	HeartbeatService_PostHeartbeat_FullMethodName = "/iot.heartbeat.v1.HeartbeatService/PostHeartbeat"
	HeartbeatService_GetDevice_FullMethodName     = "/iot.heartbeat.v1.HeartbeatService/GetDevice"
	HeartbeatService_ListDevices_FullMethodName   = "/iot.heartbeat.v1.HeartbeatService/ListDevices"
	HeartbeatService_DeleteDevice_FullMethodName  = "/iot.heartbeat.v1.HeartbeatService/DeleteDevice"
)

type HeartbeatServiceClient interface {
	PostHeartbeat(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListDevices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type heartbeatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHeartbeatServiceClient(cc grpc.ClientConnInterface) HeartbeatServiceClient {
	return &heartbeatServiceClient{cc}
}

func (c *heartbeatServiceClient) PostHeartbeat(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, HeartbeatService_PostHeartbeat_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *heartbeatServiceClient) GetDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, HeartbeatService_GetDevice_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *heartbeatServiceClient) ListDevices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, HeartbeatService_ListDevices_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *heartbeatServiceClient) DeleteDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, HeartbeatService_DeleteDevice_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// HeartbeatServiceServer must embed UnimplementedHeartbeatServiceServer.
type HeartbeatServiceServer interface {
	PostHeartbeat(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDevice(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListDevices(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	DeleteDevice(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	mustEmbedUnimplementedHeartbeatServiceServer()
}

type UnimplementedHeartbeatServiceServer struct{}

func (UnimplementedHeartbeatServiceServer) PostHeartbeat(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PostHeartbeat not implemented")
}
func (UnimplementedHeartbeatServiceServer) GetDevice(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDevice not implemented")
}
func (UnimplementedHeartbeatServiceServer) ListDevices(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDevices not implemented")
}
func (UnimplementedHeartbeatServiceServer) DeleteDevice(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteDevice not implemented")
}
func (UnimplementedHeartbeatServiceServer) mustEmbedUnimplementedHeartbeatServiceServer() {}

func RegisterHeartbeatServiceServer(s grpc.ServiceRegistrar, srv HeartbeatServiceServer) {
	s.RegisterService(&HeartbeatService_ServiceDesc, srv)
}

func _HeartbeatService_PostHeartbeat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HeartbeatServiceServer).PostHeartbeat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HeartbeatService_PostHeartbeat_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HeartbeatServiceServer).PostHeartbeat(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _HeartbeatService_GetDevice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HeartbeatServiceServer).GetDevice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HeartbeatService_GetDevice_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HeartbeatServiceServer).GetDevice(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _HeartbeatService_ListDevices_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HeartbeatServiceServer).ListDevices(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HeartbeatService_ListDevices_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HeartbeatServiceServer).ListDevices(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _HeartbeatService_DeleteDevice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HeartbeatServiceServer).DeleteDevice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HeartbeatService_DeleteDevice_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HeartbeatServiceServer).DeleteDevice(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var HeartbeatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HeartbeatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PostHeartbeat",
			Handler:    _HeartbeatService_PostHeartbeat_Handler,
		},
		{
			MethodName: "GetDevice",
			Handler:    _HeartbeatService_GetDevice_Handler,
		},
		{
			MethodName: "ListDevices",
			Handler:    _HeartbeatService_ListDevices_Handler,
		},
		{
			MethodName: "DeleteDevice",
			Handler:    _HeartbeatService_DeleteDevice_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "iot/heartbeat/v1/heartbeat_service.proto",
}
