// Package delivery defines the servers the application runs.
package delivery

import "context"

// Delivery is a long-running server started by the application.
type Delivery interface {
	// Serve blocks until the server stops. A graceful shutdown returns nil.
	Serve(ctx context.Context) error
}
