package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// poolWaitAttrs reports how long callers waited for a connection since prev.
// ok is false when nobody waited.
func poolWaitAttrs(prev, cur sql.DBStats) (attrs []slog.Attr, waited time.Duration, ok bool) {
	waitDelta := cur.WaitCount - prev.WaitCount
	if waitDelta <= 0 {
		return nil, 0, false
	}

	waited = cur.WaitDuration - prev.WaitDuration
	attrs = []slog.Attr{
		slog.Int64("waitCountDelta", waitDelta),
		slog.Duration("waitDurationDelta", waited),
		slog.Duration("avgWait", waited/time.Duration(waitDelta)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}

	return attrs, waited, true
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if attrs, waited, ok := poolWaitAttrs(prev, cur); ok {
				level := slog.LevelDebug
				if waited >= dbPoolWarnDurationThreshold {
					level = slog.LevelWarn
				}
				logger.LogAttrs(ctx, level, "Database pool wait", attrs...)
			}
			prev = cur
		}
	}
}
