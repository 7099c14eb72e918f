package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
	DeviceStatusAtRisk  DeviceStatus = "at-risk"
)

// DeviceStatuses lists every legal status in display order.
var DeviceStatuses = []DeviceStatus{DeviceStatusOnline, DeviceStatusOffline, DeviceStatusAtRisk}

func ParseDeviceStatus(s string) (DeviceStatus, error) {
	for _, status := range DeviceStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid status %q, must be one of online, offline, at-risk", s)
}

// Device is the single persisted entity. Status is a cache of the classifier output and is
// recomputed on every read.
type Device struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	DeviceID       string       `gorm:"uniqueIndex;size:255;not null" json:"device_id"`
	Name           *string      `gorm:"size:255" json:"name"`
	Status         DeviceStatus `gorm:"type:varchar(16);not null;default:offline;check:chk_devices_status,status IN ('online','offline','at-risk')" json:"status"`
	LastSeen       *time.Time   `gorm:"index" json:"last_seen"`
	BatteryLevel   *float64     `json:"battery_level"`
	SignalStrength *float64     `json:"signal_strength"`
	Location       *string      `gorm:"size:255" json:"location"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Heartbeat is one liveness report. Nil fields were not supplied by the device and leave the
// stored value untouched.
type Heartbeat struct {
	DeviceID       string
	Name           *string
	BatteryLevel   *float64
	SignalStrength *float64
	Location       *string
}

func (h Heartbeat) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.DeviceID, validation.Required, validation.Length(1, 255)),
		validation.Field(&h.Name, validation.Length(0, 255)),
		validation.Field(&h.BatteryLevel, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&h.Location, validation.Length(0, 255)),
	)
}

type StatusCounts struct {
	Online  int `json:"online_count"`
	Offline int `json:"offline_count"`
	AtRisk  int `json:"at_risk_count"`
}

func (c *StatusCounts) Add(status DeviceStatus) {
	switch status {
	case DeviceStatusOnline:
		c.Online++
	case DeviceStatusAtRisk:
		c.AtRisk++
	default:
		c.Offline++
	}
}

func (c StatusCounts) Get(status DeviceStatus) int {
	switch status {
	case DeviceStatusOnline:
		return c.Online
	case DeviceStatusAtRisk:
		return c.AtRisk
	default:
		return c.Offline
	}
}

func (c StatusCounts) Total() int {
	return c.Online + c.Offline + c.AtRisk
}

// DeviceList is a full listing with counts taken over the recomputed statuses.
type DeviceList struct {
	Devices []Device
	Counts  StatusCounts
}

type HealthSummary struct {
	DatabaseConnected bool
	TotalDevices      int64
	CheckedAt         time.Time
}
