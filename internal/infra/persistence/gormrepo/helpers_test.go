package gormrepo

import (
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"

	db, err := database.Open(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, config.DriverSQLite))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := &entity.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}
