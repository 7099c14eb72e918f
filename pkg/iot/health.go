package iot

import (
	"context"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

// healthSummary never fails: an unreachable store is reported as disconnected with no devices.
func (i *IOT) healthSummary(ctx context.Context) models.HealthSummary {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTHealth),
	)

	summary := models.HealthSummary{CheckedAt: i.now()}

	if i.Db == nil {
		return summary
	}
	if err := i.Db.Ping(ctx); err != nil {
		logger.Warn("Health check could not reach database", zap.Error(err))
		return summary
	}
	summary.DatabaseConnected = true

	store, err := i.store(ctx)
	if err != nil {
		logger.Warn("Health check could not prepare schema", zap.Error(err))
		return summary
	}

	var total int64
	if err := store.Conn.WithContext(ctx).Model(&models.Device{}).Count(&total).Error; err != nil {
		logger.Warn("Health check could not count devices", zap.Error(err))
		return summary
	}
	summary.TotalDevices = total

	return summary
}

type IHealthImpl struct {
	iot *IOT
}

func (ih *IHealthImpl) HealthSummary(ctx context.Context) models.HealthSummary {
	return ih.iot.healthSummary(ctx)
}

func (i *IOT) GetIHealth() IHealth {
	return &IHealthImpl{iot: i}
}
