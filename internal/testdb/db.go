package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestDB wraps a test database and the container backing it, if any.
type TestDB struct {
	DB        *gorm.DB
	Config    config.DatabaseConfig
	Container testcontainers.Container
}

// Close releases the connection and terminates the container, if any.
func (td *TestDB) Close() error {
	if sqlDB, err := td.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// NewSQLite returns a migrated in-memory database that lives for the test.
func NewSQLite(t *testing.T) *TestDB {
	t.Helper()

	cfg := config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}
	db, err := database.Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	td := &TestDB{DB: db, Config: cfg}
	t.Cleanup(func() {
		if err := td.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})
	return td
}

// NewPostgres starts a postgres container and returns an empty database; the
// caller applies the schema. It skips in short mode or when no container
// runtime is reachable.
func NewPostgres(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Driver:          "postgres",
		Host:            host,
		Port:            port.Port(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	}
	db, err := database.Open(cfg, nil)
	require.NoError(t, err)

	td := &TestDB{DB: db, Config: cfg, Container: container}
	t.Cleanup(func() {
		if err := td.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})
	return td
}
