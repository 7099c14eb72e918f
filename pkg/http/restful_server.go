package http

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot"
)

//go:embed templates/*.html
var templatesFS embed.FS

const DefaultRecentActivityRange = time.Hour

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
	// RecentActivityRange is the window the dashboard counts recently seen devices in.
	RecentActivityRange time.Duration
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	if rs.RateLimiterStore == nil {
		return true
	}
	return rs.RateLimiterStore.Allow(deviceID)
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) bool {
	if rs.RateLimiterStore == nil || !rs.RateLimiterStore.Enabled() {
		return false
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
	return true
}

func (rs *RestfulServer) ForgetLimiter(deviceID string) {
	if rs.RateLimiterStore != nil {
		rs.RateLimiterStore.Forget(deviceID)
	}
}

func (rs *RestfulServer) recentActivityRange() time.Duration {
	if rs.RecentActivityRange > 0 {
		return rs.RecentActivityRange
	}
	return DefaultRecentActivityRange
}

func (rs *RestfulServer) Setup() {
	rs.Server.SetHTMLTemplate(template.Must(
		template.New("").Funcs(template.FuncMap{
			"formatTime":  common.FormatTime,
			"orDash":      orDash,
			"formatFloat": formatFloat,
		}).ParseFS(templatesFS, "templates/*.html"),
	))

	rs.Server.GET("/", rs.Dashboard)
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/health", rs.Health)
	rs.Server.GET("/metrics", rs.Metrics)

	rs.Server.POST("/heartbeat", rs.PostHeartbeat)

	devices := rs.Server.Group("/devices")
	{
		devices.GET("", rs.ListDevices)
		devices.GET("/status/:status", rs.ListDevicesByStatus)
		devices.GET("/:device_id", rs.GetDevice)
		devices.DELETE("/:device_id", rs.DeleteDevice)
		devices.POST("/:device_id/limiter", rs.PostLimiter)
	}
}
