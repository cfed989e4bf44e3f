package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductInput is the client-supplied part of a product. It has no owner field.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
}

// ProductUsecase defines product operations on behalf of an authenticated caller.
type ProductUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, input *ProductInput) (*entity.Product, error)
	Get(ctx context.Context, principal *entity.Principal, id uint) (*entity.Product, error)
	ListMine(ctx context.Context, principal *entity.Principal) ([]*entity.Product, error)
	Update(ctx context.Context, principal *entity.Principal, id uint, input *ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, principal *entity.Principal, id uint) error
}
