package iot

import (
	"context"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
)

// ExportMetrics repopulates the registry gauges from the store. When the store can not be read
// the per-device gauges are cleared, counters and histograms keep their values.
func (i *IOT) ExportMetrics(ctx context.Context) error {
	if i.Metrics == nil {
		return nil
	}

	list, err := i.Device.ListDevices(ctx)
	if err != nil {
		common.GetLoggerWith(
			common.LoggerNameIOTCore,
			zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTMetrics),
		).Warn("Failed to refresh device metrics", zap.Error(err))
		i.Metrics.Refresh(nil)
		return err
	}

	i.Metrics.Refresh(list.Devices)
	return nil
}
