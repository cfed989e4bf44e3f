package impl

import (
	"io"
	"log/slog"

	"storefront/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(enforceOwnership bool) *config.Config {
	return &config.Config{
		Product: &config.ProductConfig{EnforceOwnership: enforceOwnership},
	}
}
