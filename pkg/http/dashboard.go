package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
)

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}

func (rs *RestfulServer) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := rs.Iot.Device.ListDevices(ctx)
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Failed to render dashboard", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	if rs.Iot.Metrics != nil {
		rs.Iot.Metrics.Refresh(list.Devices)
	}

	recent, err := rs.Iot.Device.RecentActivity(ctx, rs.recentActivityRange())
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Warn("Failed to count recent activity", zap.Error(err))
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Devices":        list.Devices,
		"Counts":         list.Counts,
		"Total":          list.Counts.Total(),
		"RecentActivity": recent,
		"RecentRange":    rs.recentActivityRange().String(),
	})
}
