package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health always answers 200, the body carries whether the store is reachable.
func (rs *RestfulServer) Health(c *gin.Context) {
	summary := rs.Iot.Health.HealthSummary(c.Request.Context())

	status := "healthy"
	if !summary.DatabaseConnected {
		status = "unhealthy"
	}

	checkedAt := summary.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             status,
		"timestamp":          checkedAt.Format(time.RFC3339Nano),
		"database_connected": summary.DatabaseConnected,
		"total_devices":      summary.TotalDevices,
	})
}

// Metrics repopulates the device gauges before every scrape.
func (rs *RestfulServer) Metrics(c *gin.Context) {
	if rs.Iot.Metrics == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Metrics are not enabled"})
		return
	}

	_ = rs.Iot.ExportMetrics(c.Request.Context())

	rs.Iot.Metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
