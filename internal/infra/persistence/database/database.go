// Package database opens the relational store selected by configuration and
// keeps its schema current.
package database

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database, applies migrations when enabled and
// registers connection checks and shutdown with the application lifecycle.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	driver := params.Config.Database.Driver
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", driver)
			}

			if params.Config.Database.AutoMigrate {
				if err := Migrate(ctx, db, driver); err != nil {
					return err
				}
				params.Logger.Info("Database migrations applied", slog.String("driver", driver))
			}

			go monitorDBPool(monitorCtx, params.Logger.With(slog.String("driver", driver)), sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the configured driver without touching the lifecycle.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres, "":
		db, err = pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLite.DSN), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, errors.Wrap(err, "failed to open SQLite database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
		}
		// SQLite serialises writers; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return db.Session(&gorm.Session{
		// Explicit transactions go through the transaction manager.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	}), nil
}
