package iot

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

func (i *IOT) ingest(ctx context.Context, heartbeat *models.Heartbeat) (*models.Device, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTHeartbeat),
	)

	start := time.Now()

	if heartbeat == nil {
		return nil, errors.Wrap(ErrInvalidHeartbeat, "empty heartbeat")
	}
	if err := heartbeat.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidHeartbeat, err.Error())
	}

	logger.Info("Received heartbeat for device", zap.Reflect("heartbeat", heartbeat))

	store, err := i.store(ctx)
	if err != nil {
		return nil, err
	}

	now := i.now()
	var device models.Device

	err = store.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("device_id = ?", heartbeat.DeviceID).Limit(1).Find(&device)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			created, err := i.createDevice(tx, heartbeat, now)
			if err != nil {
				return err
			}
			if created != nil {
				device = *created
				return nil
			}
			// another writer created it first, fall through to the update
			if err := tx.Where("device_id = ?", heartbeat.DeviceID).First(&device).Error; err != nil {
				return err
			}
		}

		return i.touchDevice(tx, &device, heartbeat, now)
	})
	if err != nil {
		logger.Error("Failed to upsert heartbeat for device",
			zap.String("device_id", heartbeat.DeviceID),
			zap.Error(err),
		)
		return nil, errors.Wrapf(err, "failed to store heartbeat for %s", heartbeat.DeviceID)
	}

	logger.Info("Upserted heartbeat for device", zap.Reflect("device", device))

	if i.Metrics != nil {
		i.Metrics.ObserveHeartbeat(device.DeviceID, device.Status, time.Since(start))
	}

	return &device, nil
}

// createDevice inserts a new row and returns nil when the device_id was taken concurrently.
func (i *IOT) createDevice(tx *gorm.DB, heartbeat *models.Heartbeat, now time.Time) (*models.Device, error) {
	lastSeen := now
	device := models.Device{
		DeviceID:       heartbeat.DeviceID,
		Name:           heartbeat.Name,
		LastSeen:       &lastSeen,
		BatteryLevel:   heartbeat.BatteryLevel,
		SignalStrength: heartbeat.SignalStrength,
		Location:       heartbeat.Location,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	device.Status = i.Thresholds.Classify(device.LastSeen, device.BatteryLevel, now)

	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoNothing: true,
	}).Create(&device)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &device, nil
}

// touchDevice refreshes last_seen and overwrites only the fields the heartbeat carries.
func (i *IOT) touchDevice(tx *gorm.DB, device *models.Device, heartbeat *models.Heartbeat, now time.Time) error {
	lastSeen := now
	updates := map[string]any{
		"last_seen":  lastSeen,
		"updated_at": now,
	}
	device.LastSeen = &lastSeen
	device.UpdatedAt = now

	if heartbeat.Name != nil {
		updates["name"] = *heartbeat.Name
		device.Name = heartbeat.Name
	}
	if heartbeat.BatteryLevel != nil {
		updates["battery_level"] = *heartbeat.BatteryLevel
		device.BatteryLevel = heartbeat.BatteryLevel
	}
	if heartbeat.SignalStrength != nil {
		updates["signal_strength"] = *heartbeat.SignalStrength
		device.SignalStrength = heartbeat.SignalStrength
	}
	if heartbeat.Location != nil {
		updates["location"] = *heartbeat.Location
		device.Location = heartbeat.Location
	}

	device.Status = i.Thresholds.Classify(device.LastSeen, device.BatteryLevel, now)
	updates["status"] = device.Status

	return tx.Model(&models.Device{}).Where("id = ?", device.ID).Updates(updates).Error
}

type IHeartbeatImpl struct {
	iot *IOT
}

func (ih *IHeartbeatImpl) Ingest(ctx context.Context, heartbeat *models.Heartbeat) (*models.Device, error) {
	return ih.iot.ingest(ctx, heartbeat)
}

func (i *IOT) GetIHeartbeat() IHeartbeat {
	return &IHeartbeatImpl{iot: i}
}
