package iot

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

func deviceLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTDevice),
	)
}

func (i *IOT) getDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	store, err := i.store(ctx)
	if err != nil {
		return nil, err
	}

	var device models.Device
	if err := store.Conn.WithContext(ctx).Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrDeviceNotFound, deviceID)
		}
		return nil, errors.Wrapf(err, "failed to load device %s", deviceID)
	}

	devices := []models.Device{device}
	i.syncStatuses(ctx, devices)
	return &devices[0], nil
}

func (i *IOT) loadDevices(ctx context.Context) ([]models.Device, error) {
	store, err := i.store(ctx)
	if err != nil {
		return nil, err
	}

	var devices []models.Device
	if err := store.Conn.WithContext(ctx).Order("id").Find(&devices).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	i.syncStatuses(ctx, devices)
	return devices, nil
}

func (i *IOT) listDevices(ctx context.Context) (*models.DeviceList, error) {
	devices, err := i.loadDevices(ctx)
	if err != nil {
		return nil, err
	}

	list := &models.DeviceList{Devices: devices}
	for _, device := range devices {
		list.Counts.Add(device.Status)
	}
	return list, nil
}

// listDevicesByStatus filters on the recomputed status, so a device whose cached column is
// stale is still reported under its current status.
func (i *IOT) listDevicesByStatus(ctx context.Context, status models.DeviceStatus) ([]models.Device, error) {
	if _, err := models.ParseDeviceStatus(string(status)); err != nil {
		return nil, errors.Wrap(ErrInvalidStatus, err.Error())
	}

	devices, err := i.loadDevices(ctx)
	if err != nil {
		return nil, err
	}

	return common.Filter(devices, func(d models.Device) bool {
		return d.Status == status
	}), nil
}

func (i *IOT) deleteDevice(ctx context.Context, deviceID string) error {
	store, err := i.store(ctx)
	if err != nil {
		return err
	}

	res := store.Conn.WithContext(ctx).Where("device_id = ?", deviceID).Delete(&models.Device{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to delete device %s", deviceID)
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrDeviceNotFound, deviceID)
	}

	deviceLogger().Info("Deleted device", zap.String("device_id", deviceID))
	return nil
}

func (i *IOT) recentActivity(ctx context.Context, window time.Duration) (int64, error) {
	store, err := i.store(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	since := i.now().Add(-window)
	if err := store.Conn.WithContext(ctx).Model(&models.Device{}).Where("last_seen >= ?", since).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count recent activity")
	}
	return count, nil
}

// syncStatuses recomputes the status of every device and writes back only the stale ones, one
// UPDATE per status. A failed write back is logged, the caller still gets fresh statuses.
func (i *IOT) syncStatuses(ctx context.Context, devices []models.Device) {
	now := i.now()

	stale := map[models.DeviceStatus][]string{}
	for idx := range devices {
		if i.refreshStatus(&devices[idx], now) {
			stale[devices[idx].Status] = append(stale[devices[idx].Status], devices[idx].DeviceID)
		}
	}

	for status, ids := range stale {
		err := i.Db.Conn.WithContext(ctx).
			Model(&models.Device{}).
			Where("device_id IN ?", ids).
			UpdateColumn("status", status).Error
		if err != nil {
			deviceLogger().Warn("Failed to refresh cached device status",
				zap.String("status", string(status)),
				zap.Strings("device_ids", ids),
				zap.Error(err),
			)
		}
	}
}

type IDeviceImpl struct {
	iot *IOT
}

func (id *IDeviceImpl) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	return id.iot.getDevice(ctx, deviceID)
}

func (id *IDeviceImpl) ListDevices(ctx context.Context) (*models.DeviceList, error) {
	return id.iot.listDevices(ctx)
}

func (id *IDeviceImpl) ListDevicesByStatus(ctx context.Context, status models.DeviceStatus) ([]models.Device, error) {
	return id.iot.listDevicesByStatus(ctx, status)
}

func (id *IDeviceImpl) DeleteDevice(ctx context.Context, deviceID string) error {
	return id.iot.deleteDevice(ctx, deviceID)
}

func (id *IDeviceImpl) RecentActivity(ctx context.Context, window time.Duration) (int64, error) {
	return id.iot.recentActivity(ctx, window)
}

func (i *IOT) GetIDevice() IDevice {
	return &IDeviceImpl{iot: i}
}
