package iot

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"liyu1981.xyz/iot-heartbeat-service/pkg/db"
	"liyu1981.xyz/iot-heartbeat-service/pkg/metrics"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_iot.go -package=mocks liyu1981.xyz/iot-heartbeat-service/pkg/iot IHeartbeat,IDevice,IHealth

var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrInvalidHeartbeat = errors.New("invalid heartbeat")
	ErrInvalidStatus    = errors.New("invalid status")
)

type IHeartbeat interface {
	Ingest(ctx context.Context, heartbeat *models.Heartbeat) (*models.Device, error)
}

type IDevice interface {
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
	ListDevices(ctx context.Context) (*models.DeviceList, error)
	ListDevicesByStatus(ctx context.Context, status models.DeviceStatus) ([]models.Device, error)
	DeleteDevice(ctx context.Context, deviceID string) error
	RecentActivity(ctx context.Context, window time.Duration) (int64, error)
}

type IHealth interface {
	HealthSummary(ctx context.Context) models.HealthSummary
}

type IOT struct {
	Db         *db.DB
	Metrics    *metrics.Registry
	Thresholds StatusThresholds
	// Now is the clock every status is evaluated against; nil means time.Now in UTC.
	Now func() time.Time

	Heartbeat IHeartbeat
	Device    IDevice
	Health    IHealth
}

type ServiceOpts struct {
	Heartbeat IHeartbeat
	Device    IDevice
	Health    IHealth
}

// New wires the default services around store and registry.
func New(store *db.DB, registry *metrics.Registry, thresholds StatusThresholds) *IOT {
	i := &IOT{
		Db:         store,
		Metrics:    registry,
		Thresholds: thresholds,
	}
	return i.WithServices(ServiceOpts{
		Heartbeat: i.GetIHeartbeat(),
		Device:    i.GetIDevice(),
		Health:    i.GetIHealth(),
	})
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Heartbeat != nil {
		i.Heartbeat = opts.Heartbeat
	}
	if opts.Device != nil {
		i.Device = opts.Device
	}
	if opts.Health != nil {
		i.Health = opts.Health
	}
	return i
}

func (i *IOT) now() time.Time {
	if i.Now != nil {
		return i.Now().UTC()
	}
	return time.Now().UTC()
}

// store returns the connection for one call, creating the schema first if startup could not.
func (i *IOT) store(ctx context.Context) (*db.DB, error) {
	if i.Db == nil {
		return nil, errors.New("store not configured")
	}
	if err := i.Db.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return i.Db, nil
}
