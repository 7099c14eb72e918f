package grpc

import (
	"context"
	"encoding/json"

	z "github.com/Oudwins/zog"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"liyu1981.xyz/iot-heartbeat-service/pkg/iot"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

type heartbeatRequest struct {
	DeviceID       string   `json:"device_id" zog:"device_id"`
	Name           *string  `json:"name" zog:"name"`
	BatteryLevel   *float64 `json:"battery_level" zog:"battery_level"`
	SignalStrength *float64 `json:"signal_strength" zog:"signal_strength"`
	Location       *string  `json:"location" zog:"location"`
}

var heartbeatValidator = z.Struct(z.Shape{
	"DeviceID":       z.String().Min(1).Max(255).Required(),
	"Name":           z.Ptr(z.String().Max(255)),
	"BatteryLevel":   z.Ptr(z.Float64().GTE(0).LTE(100)),
	"SignalStrength": z.Ptr(z.Float64()),
	"Location":       z.Ptr(z.String().Max(255)),
})

func validateDeviceID(deviceID *string) z.ZogIssueList {
	var deviceIdValidator = z.String().Min(1).Required()
	return deviceIdValidator.Validate(deviceID)
}

// toStatusError maps core errors onto gRPC codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, iot.ErrInvalidHeartbeat), errors.Is(err, iot.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, iot.ErrDeviceNotFound):
		return status.Error(codes.NotFound, "device not found")
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// toStruct converts through the JSON form so gRPC and HTTP clients see the same keys.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

func (s *IOTServer) PostHeartbeat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", err)
	}

	var hb heartbeatRequest
	if err := json.Unmarshal(raw, &hb); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", err)
	}
	if issues := heartbeatValidator.Validate(&hb); issues != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", issues)
	}

	device, err := s.Iot.Heartbeat.Ingest(ctx, &models.Heartbeat{
		DeviceID:       hb.DeviceID,
		Name:           hb.Name,
		BatteryLevel:   hb.BatteryLevel,
		SignalStrength: hb.SignalStrength,
		Location:       hb.Location,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := toStruct(device)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func (s *IOTServer) GetDevice(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	deviceID := req.GetValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", issues)
	}

	device, err := s.Iot.Device.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := toStruct(device)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func (s *IOTServer) ListDevices(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	list, err := s.Iot.Device.ListDevices(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	devices := list.Devices
	if devices == nil {
		devices = []models.Device{}
	}

	resp, err := toStruct(map[string]any{
		"devices":       devices,
		"total_count":   list.Counts.Total(),
		"online_count":  list.Counts.Online,
		"offline_count": list.Counts.Offline,
		"at_risk_count": list.Counts.AtRisk,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func (s *IOTServer) DeleteDevice(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	deviceID := req.GetValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", issues)
	}

	if err := s.Iot.Device.DeleteDevice(ctx, deviceID); err != nil {
		return nil, toStatusError(err)
	}

	if s.RateLimiterStore != nil {
		s.RateLimiterStore.Forget(deviceID)
	}

	return &emptypb.Empty{}, nil
}

