package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/db"
	pb "liyu1981.xyz/iot-heartbeat-service/pkg/grpc/heartbeat_service"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot/mocks"
	"liyu1981.xyz/iot-heartbeat-service/pkg/metrics"
	_ "liyu1981.xyz/iot-heartbeat-service/pkg/testing"
)

const bufSize = 1024 * 1024

func startTestServer(t *testing.T, limiter *iot.RateLimiterStore) (pb.HeartbeatServiceClient, *IOTServer) {
	listener := bufconn.Listen(bufSize)

	iotCore := iot.New(
		db.GetInstance(db.UseMemorySqliteDialector()),
		metrics.NewRegistry(),
		iot.DefaultStatusThresholds(),
	)

	iotServer := &IOTServer{Iot: iotCore, RateLimiterStore: limiter}
	server := NewServer(iotServer)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return pb.NewHeartbeatServiceClient(conn), iotServer
}

func heartbeat(t *testing.T, fields map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestPostHeartbeatAndGetDevice(t *testing.T) {
	common.SetTestLoggerNop()
	client, _ := startTestServer(t, nil)

	deviceID := uuid.NewString()
	resp, err := client.PostHeartbeat(context.Background(), heartbeat(t, map[string]any{
		"device_id":     deviceID,
		"name":          "Temperature Sensor 1",
		"battery_level": 85.0,
		"location":      "Building A - Floor 1",
	}))
	require.NoError(t, err)

	assert.Equal(t, deviceID, resp.Fields["device_id"].GetStringValue())
	assert.Equal(t, "online", resp.Fields["status"].GetStringValue())
	assert.Equal(t, 85.0, resp.Fields["battery_level"].GetNumberValue())

	// partial update
	_, err = client.PostHeartbeat(context.Background(), heartbeat(t, map[string]any{
		"device_id":     deviceID,
		"battery_level": 0.0,
	}))
	require.NoError(t, err)

	device, err := client.GetDevice(context.Background(), wrapperspb.String(deviceID))
	require.NoError(t, err)
	assert.Equal(t, "Temperature Sensor 1", device.Fields["name"].GetStringValue())
	assert.Equal(t, 0.0, device.Fields["battery_level"].GetNumberValue())
	assert.Equal(t, "at-risk", device.Fields["status"].GetStringValue())
}

func TestPostHeartbeat_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	client, _ := startTestServer(t, nil)

	for _, fields := range []map[string]any{
		{},
		{"device_id": ""},
		{"device_id": uuid.NewString(), "battery_level": 150.0},
		{"device_id": uuid.NewString(), "battery_level": "full"},
	} {
		_, err := client.PostHeartbeat(context.Background(), heartbeat(t, fields))
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), fmt.Sprintf("%v", fields))
	}
}

func TestPostHeartbeat_RateLimited(t *testing.T) {
	common.SetTestLoggerNop()
	client, _ := startTestServer(t, iot.NewRateLimiterStore(1, 1))

	deviceID := uuid.NewString()
	_, err := client.PostHeartbeat(context.Background(), heartbeat(t, map[string]any{"device_id": deviceID}))
	require.NoError(t, err)

	_, err = client.PostHeartbeat(context.Background(), heartbeat(t, map[string]any{"device_id": deviceID}))
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// reads are never limited
	for range 3 {
		_, err = client.GetDevice(context.Background(), wrapperspb.String(deviceID))
		require.NoError(t, err)
	}
}

func TestListAndDeleteDevices(t *testing.T) {
	common.SetTestLoggerNop()
	client, _ := startTestServer(t, nil)

	deviceID := uuid.NewString()
	_, err := client.PostHeartbeat(context.Background(), heartbeat(t, map[string]any{"device_id": deviceID, "battery_level": 10.0}))
	require.NoError(t, err)

	list, err := client.ListDevices(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	devices := list.Fields["devices"].GetListValue().GetValues()
	total := int(list.Fields["total_count"].GetNumberValue())
	assert.Equal(t, len(devices), total)
	assert.Equal(t, total, int(list.Fields["online_count"].GetNumberValue()+
		list.Fields["offline_count"].GetNumberValue()+
		list.Fields["at_risk_count"].GetNumberValue()))

	_, err = client.DeleteDevice(context.Background(), wrapperspb.String(deviceID))
	require.NoError(t, err)

	_, err = client.GetDevice(context.Background(), wrapperspb.String(deviceID))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.DeleteDevice(context.Background(), wrapperspb.String(deviceID))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetDevice(context.Background(), wrapperspb.String(""))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestStoreFailure(t *testing.T) {
	common.SetTestLoggerNop()
	client, iotServer := startTestServer(t, nil)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIHeartbeat := mocks.NewMockIHeartbeat(ctrl)
	mockIDevice := mocks.NewMockIDevice(ctrl)
	iotServer.Iot.WithServices(iot.ServiceOpts{Heartbeat: mockIHeartbeat, Device: mockIDevice})

	mockIHeartbeat.EXPECT().
		Ingest(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("just causing error")).
		Times(1)
	mockIDevice.EXPECT().
		ListDevices(gomock.Any()).
		Return(nil, fmt.Errorf("just causing error")).
		Times(1)

	_, err := client.PostHeartbeat(context.Background(), heartbeat(t, map[string]any{"device_id": uuid.NewString()}))
	assert.Equal(t, codes.Internal, status.Code(err))

	_, err = client.ListDevices(context.Background(), &emptypb.Empty{})
	assert.Equal(t, codes.Internal, status.Code(err))
}
