package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
)

func TestWithEnvPath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	testPath := filepath.Join(t.TempDir(), "test.db")
	t.Setenv(common.EnvKeyIOTDbPath, testPath)

	dialector := UseSqliteDialector()
	instance, err := Open(dialector, OptionsFor(dialector, 0))
	if err != nil || instance == nil || instance.Conn == nil {
		t.Fatalf("Expected non-nil DB connection, got error %v", err)
	}
	defer instance.Close()

	if err := instance.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("Expected schema to be created: %v", err)
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
}

func TestWithPostgres(t *testing.T) {
	common.SetTestLoggerNop()

	dsn := os.Getenv(common.EnvKeyIOTDbDSN)
	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" || dsn == "" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS and IOT_DB_DSN must be set")
	}

	dialector := UsePostgresDialector(dsn)
	instance, err := Open(dialector, OptionsFor(dialector, 0))
	if err != nil {
		t.Fatalf("Expected postgres pool, got error %v", err)
	}
	defer instance.Close()

	if err := instance.WaitForStore(context.Background(), 5, 0); err != nil {
		t.Fatalf("Expected postgres to be reachable: %v", err)
	}
	if err := instance.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("Expected schema to be created: %v", err)
	}
}
