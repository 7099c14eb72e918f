package iot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
	_ "liyu1981.xyz/iot-heartbeat-service/pkg/testing"
)

func TestExportMetrics(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := iotObj.Heartbeat.Ingest(context.Background(), &models.Heartbeat{
		DeviceID:       uuid.NewString(),
		BatteryLevel:   ptr(85.0),
		SignalStrength: ptr(-45.0),
	})
	require.NoError(t, err)

	require.NoError(t, iotObj.ExportMetrics(context.Background()))

	count, err := testutil.GatherAndCount(iotObj.Metrics, "iot_device_count")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = testutil.GatherAndCount(iotObj.Metrics, "iot_device_status")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}

func TestExportMetrics_StoreFailureClearsGauges(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, mockIDevice, _ := GetMockIOTWithMemorySqliteDialector(t, true, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	iotObj.Metrics.ObserveHeartbeat(deviceID, models.DeviceStatusOnline, 0)
	iotObj.Metrics.Refresh([]models.Device{{DeviceID: deviceID, Status: models.DeviceStatusOnline, BatteryLevel: ptr(50.0)}})

	mockIDevice.
		EXPECT().
		ListDevices(gomock.Any()).
		Return(nil, errors.New("database is locked")).
		Times(1)

	err := iotObj.ExportMetrics(context.Background())
	require.Error(t, err)

	count, err := testutil.GatherAndCount(iotObj.Metrics, "iot_device_status", "iot_device_battery_level")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = testutil.GatherAndCount(iotObj.Metrics, "iot_heartbeat_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
