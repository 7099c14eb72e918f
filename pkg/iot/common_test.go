package iot

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"liyu1981.xyz/iot-heartbeat-service/pkg/db"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot/mocks"
	"liyu1981.xyz/iot-heartbeat-service/pkg/metrics"
)

func GetMockIOTWithMemorySqliteDialector(t *testing.T, useMockIDevice, useMockIHealth bool) (
	*gomock.Controller,
	*IOT,
	*mocks.MockIDevice,
	*mocks.MockIHealth,
) {
	ctrl := gomock.NewController(t)

	mockIDevice := mocks.NewMockIDevice(ctrl)
	mockIHealth := mocks.NewMockIHealth(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	iotInstance := New(dbInstance, metrics.NewRegistry(), DefaultStatusThresholds())

	deviceService := iotInstance.GetIDevice()
	if useMockIDevice {
		deviceService = mockIDevice
	}

	healthService := iotInstance.GetIHealth()
	if useMockIHealth {
		healthService = mockIHealth
	}

	iotInstance.WithServices(ServiceOpts{
		Device: deviceService,
		Health: healthService,
	})

	return ctrl, iotInstance, mockIDevice, mockIHealth
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func ptr[T any](v T) *T {
	return &v
}
