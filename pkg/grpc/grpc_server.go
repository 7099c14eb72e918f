package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "liyu1981.xyz/iot-heartbeat-service/pkg/grpc/heartbeat_service"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot"
)

type IOTServer struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
	pb.UnimplementedHeartbeatServiceServer
}

func (i *IOTServer) CheckDeviceLimiter(deviceID string) bool {
	if i.RateLimiterStore == nil {
		return true
	}
	return i.RateLimiterStore.Allow(deviceID)
}

// NewServer builds a grpc.Server with the heartbeat service registered behind the logging and
// per-device rate limit interceptors. Only heartbeats are rate limited.
func NewServer(iotServer *IOTServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		iotServer.CreateLoggingInterceptor(),
		iotServer.CreateRateLimitInterceptor([]string{pb.HeartbeatService_PostHeartbeat_FullMethodName}),
	))

	server := grpc.NewServer(opts...)
	pb.RegisterHeartbeatServiceServer(server, iotServer)
	return server
}

// deviceIDOf digs the device id out of any request message the service accepts.
func deviceIDOf(req any) (string, bool) {
	switch r := req.(type) {
	case *structpb.Struct:
		if v, ok := r.GetFields()["device_id"]; ok {
			return v.GetStringValue(), true
		}
	case *wrapperspb.StringValue:
		return r.GetValue(), true
	}
	return "", false
}

