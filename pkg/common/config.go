package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBType            string
	DBPath            string
	DBDSN             string
	DBConnectAttempts int
	DBConnectInterval time.Duration
	DBConnMaxLifetime time.Duration

	HttpHostPort string
	GrpcHostPort string

	// DefaultRate <= 0 disables per-device rate limiting.
	DefaultRate  float64
	DefaultBurst int

	OnlineTimeout       time.Duration
	AtRiskTimeout       time.Duration
	BatteryThreshold    float64
	RecentActivityRange time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		DBType:              DBTypeFile,
		DBPath:              "heartbeat.db",
		DBConnectAttempts:   30,
		DBConnectInterval:   2 * time.Second,
		DBConnMaxLifetime:   5 * time.Minute,
		HttpHostPort:        ":1080",
		OnlineTimeout:       5 * time.Minute,
		AtRiskTimeout:       2 * time.Minute,
		BatteryThreshold:    20.0,
		RecentActivityRange: time.Hour,
	}
}

// LoadEnvFile loads a dotenv file into the process environment. A missing file is not an
// error: containers usually pass the environment directly.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadConfig reads the service configuration from the environment on top of DefaultConfig.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	var err error

	if v := env(EnvKeyIOTDBType); v != "" {
		cfg.DBType = v
	}
	switch cfg.DBType {
	case DBTypeFile, DBTypeMemory, DBTypePostgres:
	default:
		return nil, fmt.Errorf("unknown %s: %q", EnvKeyIOTDBType, cfg.DBType)
	}

	if v := env(EnvKeyIOTDbPath); v != "" {
		cfg.DBPath = v
	}
	cfg.DBDSN = env(EnvKeyIOTDbDSN)
	if cfg.DBType == DBTypePostgres && cfg.DBDSN == "" {
		return nil, fmt.Errorf("%s is required when %s=%s", EnvKeyIOTDbDSN, EnvKeyIOTDBType, DBTypePostgres)
	}

	if cfg.DBConnectAttempts, err = envInt(EnvKeyIOTDbConnectAttempts, cfg.DBConnectAttempts); err != nil {
		return nil, err
	}
	if cfg.DBConnectInterval, err = envDuration(EnvKeyIOTDbConnectInterval, cfg.DBConnectInterval); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = envDuration(EnvKeyIOTDbConnMaxLifetime, cfg.DBConnMaxLifetime); err != nil {
		return nil, err
	}

	if v := env(EnvKeyIOTHttpHostPort); v != "" {
		cfg.HttpHostPort = v
	}
	cfg.GrpcHostPort = env(EnvKeyIOTGrpcHostPort)

	if cfg.DefaultRate, err = envFloat(EnvKeyIOTDefaultRate, 0); err != nil {
		return nil, err
	}
	if cfg.DefaultBurst, err = envInt(EnvKeyIOTDefaultBurst, 1); err != nil {
		return nil, err
	}

	if cfg.OnlineTimeout, err = envDuration(EnvKeyIOTOnlineTimeout, cfg.OnlineTimeout); err != nil {
		return nil, err
	}
	if cfg.AtRiskTimeout, err = envDuration(EnvKeyIOTAtRiskTimeout, cfg.AtRiskTimeout); err != nil {
		return nil, err
	}
	if cfg.AtRiskTimeout > cfg.OnlineTimeout {
		return nil, fmt.Errorf("%s (%v) must not exceed %s (%v)",
			EnvKeyIOTAtRiskTimeout, cfg.AtRiskTimeout, EnvKeyIOTOnlineTimeout, cfg.OnlineTimeout)
	}
	if cfg.BatteryThreshold, err = envFloat(EnvKeyIOTBatteryThreshold, cfg.BatteryThreshold); err != nil {
		return nil, err
	}
	if cfg.RecentActivityRange, err = envDuration(EnvKeyIOTRecentActivityRange, cfg.RecentActivityRange); err != nil {
		return nil, err
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string, fallback int) (int, error) {
	v := env(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s, should be an int value: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := env(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s, should be a float64 value: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := env(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s, should be a duration like 2s or 5m: %w", key, err)
	}
	return d, nil
}
