package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create persists a new product and back-fills its ID and timestamps.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by ID.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// FindByOwner lists products created by ownerID, oldest first.
	FindByOwner(ctx context.Context, ownerID uint) ([]*entity.Product, error)

	// Update overwrites the mutable columns of an existing product.
	// The stored owner is never changed.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uint) error
}
