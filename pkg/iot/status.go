package iot

import (
	"time"

	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

const (
	DefaultOnlineTimeout    = 5 * time.Minute
	DefaultAtRiskTimeout    = 2 * time.Minute
	DefaultBatteryThreshold = 20.0
)

// StatusThresholds are service wide; devices can not carry their own.
type StatusThresholds struct {
	OnlineTimeout    time.Duration
	AtRiskTimeout    time.Duration
	BatteryThreshold float64
}

func DefaultStatusThresholds() StatusThresholds {
	return StatusThresholds{
		OnlineTimeout:    DefaultOnlineTimeout,
		AtRiskTimeout:    DefaultAtRiskTimeout,
		BatteryThreshold: DefaultBatteryThreshold,
	}
}

// Classify derives the status of a device at now. A device that was never seen is offline,
// whatever its battery says. Elapsed times equal to a timeout count as expired.
func (t StatusThresholds) Classify(lastSeen *time.Time, batteryLevel *float64, now time.Time) models.DeviceStatus {
	if lastSeen == nil {
		return models.DeviceStatusOffline
	}

	elapsed := now.Sub(*lastSeen)
	switch {
	case elapsed >= t.OnlineTimeout:
		return models.DeviceStatusOffline
	case elapsed >= t.AtRiskTimeout:
		return models.DeviceStatusAtRisk
	case batteryLevel != nil && *batteryLevel < t.BatteryThreshold:
		return models.DeviceStatusAtRisk
	default:
		return models.DeviceStatusOnline
	}
}

func Classify(lastSeen *time.Time, batteryLevel *float64, now time.Time) models.DeviceStatus {
	return DefaultStatusThresholds().Classify(lastSeen, batteryLevel, now)
}

// refreshStatus recomputes device.Status in place and reports whether the cached value was stale.
func (i *IOT) refreshStatus(device *models.Device, now time.Time) bool {
	status := i.Thresholds.Classify(device.LastSeen, device.BatteryLevel, now)
	stale := device.Status != status
	device.Status = status
	return stale
}
