package database

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"storefront/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newSQLiteConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"

	return cfg
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := newSQLiteConfig()
	db, err := Open(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db, config.DriverSQLite))
	// Applying twice is a no-op.
	require.NoError(t, Migrate(context.Background(), db, config.DriverSQLite))

	for _, table := range []string{"users", "products"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("users", "idx_users_email"))
	assert.True(t, db.Migrator().HasIndex("products", "idx_products_owner_id"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "oracle"

	_, err := Open(cfg, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestMigrationTarget(t *testing.T) {
	tests := []struct {
		driver  string
		dialect string
		dir     string
		wantErr bool
	}{
		{driver: config.DriverPostgres, dialect: "postgres", dir: "postgres"},
		{driver: "", dialect: "postgres", dir: "postgres"},
		{driver: config.DriverSQLite, dialect: "sqlite3", dir: "sqlite"},
		{driver: "mysql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			dialect, dir, err := migrationTarget(tt.driver)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialect)
			assert.Equal(t, tt.dir, dir)
		})
	}
}

func TestPoolWaitAttrs(t *testing.T) {
	prev := sql.DBStats{WaitCount: 2, WaitDuration: 10 * time.Millisecond}

	_, _, ok := poolWaitAttrs(prev, prev)
	assert.False(t, ok)

	cur := sql.DBStats{WaitCount: 4, WaitDuration: 70 * time.Millisecond, MaxOpenConnections: 5}
	attrs, waited, ok := poolWaitAttrs(prev, cur)
	require.True(t, ok)
	assert.Equal(t, 60*time.Millisecond, waited)

	values := make(map[string]slog.Value, len(attrs))
	for _, attr := range attrs {
		values[attr.Key] = attr.Value
	}
	assert.Equal(t, int64(2), values["waitCountDelta"].Int64())
	assert.Equal(t, 30*time.Millisecond, values["avgWait"].Duration())
	assert.Equal(t, int64(5), values["maxOpenConns"].Int64())
}

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	cfg := &config.Config{}
	l := newGormSlogLogger(base, cfg)

	l.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Empty(t, buf.String(), "warn level skips plain queries")

	l.Trace(context.Background(), time.Now(), sqlFn, assert.AnError)
	assert.Contains(t, buf.String(), "SQL query failed")
	assert.Contains(t, buf.String(), "SELECT 1")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	assert.Contains(t, buf.String(), "SQL slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sqlFn, assert.AnError)
	assert.Empty(t, buf.String())

	buf.Reset()
	cfg.Env.Debug = true
	newGormSlogLogger(base, cfg).Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Contains(t, buf.String(), "SQL query")
}
