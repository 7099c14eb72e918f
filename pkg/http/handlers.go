package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

const (
	MIMEMsgpack  = "application/msgpack"
	MIMEXMsgpack = "application/x-msgpack"
)

type HeartbeatRequest struct {
	DeviceID       string   `json:"device_id" msgpack:"device_id" zog:"device_id"`
	Name           *string  `json:"name,omitempty" msgpack:"name,omitempty" zog:"name"`
	BatteryLevel   *float64 `json:"battery_level,omitempty" msgpack:"battery_level,omitempty" zog:"battery_level"`
	SignalStrength *float64 `json:"signal_strength,omitempty" msgpack:"signal_strength,omitempty" zog:"signal_strength"`
	Location       *string  `json:"location,omitempty" msgpack:"location,omitempty" zog:"location"`
}

var heartbeatRequestSchema = z.Struct(z.Shape{
	"DeviceID":       z.String().Min(1).Max(255).Required(),
	"Name":           z.Ptr(z.String().Max(255)),
	"BatteryLevel":   z.Ptr(z.Float64().GTE(0).LTE(100)),
	"SignalStrength": z.Ptr(z.Float64()),
	"Location":       z.Ptr(z.String().Max(255)),
})

func (r *HeartbeatRequest) Heartbeat() *models.Heartbeat {
	return &models.Heartbeat{
		DeviceID:       r.DeviceID,
		Name:           r.Name,
		BatteryLevel:   r.BatteryLevel,
		SignalStrength: r.SignalStrength,
		Location:       r.Location,
	}
}

func isMsgpack(c *gin.Context) bool {
	contentType := c.ContentType()
	return contentType == MIMEMsgpack || contentType == MIMEXMsgpack
}

// parseHeartbeat decodes a JSON or msgpack body into a HeartbeatRequest and runs the zog schema
// over the result. Wrongly typed fields fail the decode.
func parseHeartbeat(c *gin.Context) (*HeartbeatRequest, error) {
	var req HeartbeatRequest

	if isMsgpack(c) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read body")
		}
		if err := msgpack.Unmarshal(body, &req); err != nil {
			return nil, errors.Wrap(err, "malformed msgpack body")
		}
		if issues := heartbeatRequestSchema.Validate(&req); issues != nil {
			return nil, fmt.Errorf("validation error: %v", issues)
		}
		return &req, nil
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, errors.Wrap(err, "malformed JSON body")
	}
	if issues := heartbeatRequestSchema.Validate(&req); issues != nil {
		return nil, fmt.Errorf("validation error: %v", issues)
	}
	return &req, nil
}

func (rs *RestfulServer) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, iot.ErrInvalidHeartbeat), errors.Is(err, iot.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, iot.ErrDeviceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
	default:
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (rs *RestfulServer) PostHeartbeat(c *gin.Context) {
	req, err := parseHeartbeat(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !rs.CheckDeviceLimiter(req.DeviceID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many heartbeats"})
		return
	}

	device, err := rs.Iot.Heartbeat.Ingest(c.Request.Context(), req.Heartbeat())
	if err != nil {
		rs.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	list, err := rs.Iot.Device.ListDevices(c.Request.Context())
	if err != nil {
		rs.abortWithError(c, err)
		return
	}

	if rs.Iot.Metrics != nil {
		rs.Iot.Metrics.Refresh(list.Devices)
	}

	devices := list.Devices
	if devices == nil {
		devices = []models.Device{}
	}

	c.JSON(http.StatusOK, gin.H{
		"devices":       devices,
		"total_count":   list.Counts.Total(),
		"online_count":  list.Counts.Online,
		"offline_count": list.Counts.Offline,
		"at_risk_count": list.Counts.AtRisk,
	})
}

func (rs *RestfulServer) GetDevice(c *gin.Context) {
	device, err := rs.Iot.Device.GetDevice(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		rs.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) ListDevicesByStatus(c *gin.Context) {
	status, err := models.ParseDeviceStatus(c.Param("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	devices, err := rs.Iot.Device.ListDevicesByStatus(c.Request.Context(), status)
	if err != nil {
		rs.abortWithError(c, err)
		return
	}
	if devices == nil {
		devices = []models.Device{}
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices, "count": len(devices)})
}

func (rs *RestfulServer) DeleteDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	if err := rs.Iot.Device.DeleteDevice(c.Request.Context(), deviceID); err != nil {
		rs.abortWithError(c, err)
		return
	}

	rs.ForgetLimiter(deviceID)

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Device %s deleted successfully", deviceID)})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().GT(0).Required(),
	"Burst": z.Int().GT(0).Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if issues := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("validation error: %v", issues)})
		return
	}

	if !rs.SetLimiter(deviceID, req.Rate, req.Burst) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rate limiting is not enabled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
