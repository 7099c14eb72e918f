package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

// Registry owns every metric the service exports.
//
// Counters and histograms accumulate for the lifetime of the process. Gauges describe the
// store at the last Refresh: each refresh clears them and repopulates from scratch, so a
// deleted device disappears from the gauges on the next scrape.
type Registry struct {
	registry *prometheus.Registry

	heartbeats *prometheus.CounterVec
	latency    *prometheus.HistogramVec

	deviceStatus   *prometheus.GaugeVec
	batteryLevel   *prometheus.GaugeVec
	signalStrength *prometheus.GaugeVec
	deviceCount    *prometheus.GaugeVec

	// mu keeps Gather from observing a half-repopulated gauge set.
	mu sync.Mutex
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		heartbeats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iot_heartbeat_total",
			Help: "Total number of heartbeat requests received",
		}, []string{"device_id", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iot_heartbeat_latency_seconds",
			Help:    "Time taken to process heartbeat requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"device_id"}),
		deviceStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "iot_device_status",
			Help: "Current status of IoT devices",
		}, []string{"device_id", "status"}),
		batteryLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "iot_device_battery_level",
			Help: "Battery level of IoT devices",
		}, []string{"device_id"}),
		signalStrength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "iot_device_signal_strength",
			Help: "Signal strength of IoT devices",
		}, []string{"device_id"}),
		deviceCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "iot_device_count",
			Help: "Total number of devices by status",
		}, []string{"status"}),
	}

	r.registry.MustRegister(
		r.heartbeats,
		r.latency,
		r.deviceStatus,
		r.batteryLevel,
		r.signalStrength,
		r.deviceCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

func (r *Registry) ObserveHeartbeat(deviceID string, status models.DeviceStatus, elapsed time.Duration) {
	r.heartbeats.WithLabelValues(deviceID, string(status)).Inc()
	r.latency.WithLabelValues(deviceID).Observe(elapsed.Seconds())
}

// Refresh replaces every gauge with the state of devices, whose Status must already be
// recomputed.
func (r *Registry) Refresh(devices []models.Device) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deviceStatus.Reset()
	r.batteryLevel.Reset()
	r.signalStrength.Reset()
	r.deviceCount.Reset()

	var counts models.StatusCounts
	for _, device := range devices {
		r.deviceStatus.WithLabelValues(device.DeviceID, string(device.Status)).Set(1)

		if device.BatteryLevel != nil {
			r.batteryLevel.WithLabelValues(device.DeviceID).Set(*device.BatteryLevel)
		}
		if device.SignalStrength != nil {
			r.signalStrength.WithLabelValues(device.DeviceID).Set(*device.SignalStrength)
		}

		counts.Add(device.Status)
	}

	for _, status := range models.DeviceStatuses {
		r.deviceCount.WithLabelValues(string(status)).Set(float64(counts.Get(status)))
	}
}

func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry.Gather()
}

// Handler serves the text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r, promhttp.HandlerOpts{})
}
