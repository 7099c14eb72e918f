package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

func ptr[T any](v T) *T {
	return &v
}

func TestObserveHeartbeatAccumulates(t *testing.T) {
	r := NewRegistry()

	r.ObserveHeartbeat("sensor-001", models.DeviceStatusOnline, 10*time.Millisecond)
	r.ObserveHeartbeat("sensor-001", models.DeviceStatusOnline, 20*time.Millisecond)
	r.ObserveHeartbeat("sensor-001", models.DeviceStatusAtRisk, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.heartbeats.WithLabelValues("sensor-001", "online")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.heartbeats.WithLabelValues("sensor-001", "at-risk")))

	// refreshing gauges never resets counters or histograms
	r.Refresh(nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.heartbeats.WithLabelValues("sensor-001", "online")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency, "iot_heartbeat_latency_seconds"))
}

func TestRefreshRepopulatesGauges(t *testing.T) {
	r := NewRegistry()

	r.Refresh([]models.Device{
		{DeviceID: "sensor-001", Status: models.DeviceStatusOnline, BatteryLevel: ptr(85.0), SignalStrength: ptr(-45.0)},
		{DeviceID: "sensor-002", Status: models.DeviceStatusAtRisk, BatteryLevel: ptr(15.0)},
		{DeviceID: "sensor-003", Status: models.DeviceStatusOffline},
	})

	assert.Equal(t, 3, testutil.CollectAndCount(r.deviceStatus, "iot_device_status"))
	assert.Equal(t, 2, testutil.CollectAndCount(r.batteryLevel, "iot_device_battery_level"))
	assert.Equal(t, 1, testutil.CollectAndCount(r.signalStrength, "iot_device_signal_strength"))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deviceStatus.WithLabelValues("sensor-002", "at-risk")))
	assert.Equal(t, 85.0, testutil.ToFloat64(r.batteryLevel.WithLabelValues("sensor-001")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deviceCount.WithLabelValues("online")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deviceCount.WithLabelValues("offline")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deviceCount.WithLabelValues("at-risk")))

	// sensor-001 changes status and sensor-003 was deleted: no stale label pair survives
	r.Refresh([]models.Device{
		{DeviceID: "sensor-001", Status: models.DeviceStatusOffline},
		{DeviceID: "sensor-002", Status: models.DeviceStatusAtRisk, BatteryLevel: ptr(14.0)},
	})

	assert.Equal(t, 2, testutil.CollectAndCount(r.deviceStatus, "iot_device_status"))
	assert.Equal(t, 1, testutil.CollectAndCount(r.batteryLevel, "iot_device_battery_level"))
	assert.Equal(t, 0, testutil.CollectAndCount(r.signalStrength, "iot_device_signal_strength"))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.deviceCount.WithLabelValues("online")))
	assert.Equal(t, 3, testutil.CollectAndCount(r.deviceCount, "iot_device_count"))
}

func TestHandlerServesTextFormat(t *testing.T) {
	r := NewRegistry()
	r.ObserveHeartbeat("sensor-001", models.DeviceStatusOnline, time.Millisecond)
	r.Refresh([]models.Device{{DeviceID: "sensor-001", Status: models.DeviceStatusOnline}})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	for _, want := range []string{
		`iot_heartbeat_total{device_id="sensor-001",status="online"} 1`,
		`iot_device_status{device_id="sensor-001",status="online"} 1`,
		`iot_device_count{status="online"} 1`,
		`iot_heartbeat_latency_seconds_count{device_id="sensor-001"} 1`,
	} {
		assert.True(t, strings.Contains(text, want), "expected %q in metrics output", want)
	}
}
