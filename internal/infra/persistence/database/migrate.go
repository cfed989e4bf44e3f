package database

import (
	"context"

	"storefront/config"
	"storefront/internal/errors"
	"storefront/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// Migrate applies every pending migration for driver.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	dialect, dir, err := migrationTarget(driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB for migrations")
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

func migrationTarget(driver string) (dialect, dir string, err error) {
	switch driver {
	case config.DriverPostgres, "":
		return "postgres", migrations.PostgresDir, nil
	case config.DriverSQLite:
		return "sqlite3", migrations.SQLiteDir, nil
	default:
		return "", "", errors.Errorf("no migrations for driver %q", driver)
	}
}
