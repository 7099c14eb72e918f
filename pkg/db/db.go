package db

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB

	schemaMu    sync.Mutex
	schemaReady bool
}

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var (
	instance *DB
	once     sync.Once
)

// GetInstance returns the process-wide store, migrating it on first use. Tests and the
// memory dialector rely on it being shared.
func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		instance, err = Open(dialector, OptionsFor(dialector, 5*time.Minute))
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err = instance.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
	})
	return instance
}

// Open prepares a connection pool without touching the network, so a store that is down at
// startup does not prevent the service from starting.
func Open(dialector gorm.Dialector, opts Options) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameDB)

	conn, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc:              func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access connection pool")
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	logger.Info("Opened database with dialector:",
		zap.String("dialector", dialector.Name()),
		zap.Int("max_open_conns", opts.MaxOpenConns),
		zap.Duration("conn_max_lifetime", opts.ConnMaxLifetime),
	)

	return &DB{Conn: conn}, nil
}

// OptionsFor picks pool settings per dialector. sqlite serializes writers itself and an
// in-memory database disappears with its last connection, so it gets a single connection
// that is never recycled.
func OptionsFor(dialector gorm.Dialector, connMaxLifetime time.Duration) Options {
	if d, ok := dialector.(*sqlite.Dialector); ok {
		opts := Options{MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxLifetime: connMaxLifetime}
		if strings.Contains(d.DSN, ":memory:") || strings.Contains(d.DSN, "mode=memory") {
			opts.ConnMaxLifetime = 0
		}
		return opts
	}
	return Options{MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: connMaxLifetime}
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Conn.WithContext(ctx).Exec("SELECT 1").Error
}

// WaitForStore pings the store up to attempts times, sleeping interval between tries.
func (d *DB) WaitForStore(ctx context.Context, attempts int, interval time.Duration) error {
	logger := common.GetLoggerWith(common.LoggerNameDB)

	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = d.Ping(ctx); lastErr == nil {
			logger.Info("Database connection established", zap.Int("attempt", attempt))
			return nil
		}

		logger.Warn("Database not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(lastErr),
		)

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	logger.Error("Failed to connect to database after all retries", zap.Int("attempts", attempts))
	return errors.Wrapf(lastErr, "db connect failed after %d attempts", attempts)
}

// EnsureSchema creates the schema once. Until it succeeds every call retries it, which lets
// a service that started without its store recover once the store comes up.
func (d *DB) EnsureSchema(ctx context.Context) error {
	d.schemaMu.Lock()
	defer d.schemaMu.Unlock()

	if d.schemaReady {
		return nil
	}

	if err := d.Conn.WithContext(ctx).AutoMigrate(&models.Device{}); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	if dialector, ok := d.Conn.Dialector.(*sqlite.Dialector); ok && !strings.Contains(dialector.DSN, "memory") {
		if err := d.Conn.WithContext(ctx).Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return errors.Wrap(err, "failed to set sqlite journal mode")
		}
	}

	d.schemaReady = true
	common.GetLoggerWith(common.LoggerNameDB).Info("Database migration completed")
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyIOTDbPath); !found || dbPath == "" {
		dbPath = "heartbeat.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// UseDialector maps the configured store type onto a dialector.
func UseDialector(cfg *common.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case common.DBTypeFile:
		return sqlite.Open(cfg.DBPath), nil
	case common.DBTypeMemory:
		return UseMemorySqliteDialector(), nil
	case common.DBTypePostgres:
		return UsePostgresDialector(cfg.DBDSN), nil
	default:
		return nil, errors.Errorf("unknown store type %q", cfg.DBType)
	}
}
