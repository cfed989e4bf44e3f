package gormrepo

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return translateProductWriteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindByOwner(ctx context.Context, ownerID uint) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products by owner")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Update writes the four mutable columns. owner_id is never part of the SET clause.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
			"image_url":   product.ImageURL,
			"updated_at":  now,
		})
	if result.Error != nil {
		return translateProductWriteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	product.UpdatedAt = now

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func translateProductWriteError(err error, details string) error {
	switch {
	case isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	case isNumericOutOfRange(err):
		return domainerrors.ErrValidationFailed.WithDetails("price is out of range")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrProductWriteFailed.WrapMessage("owner does not exist")
	case isNotNullConstraintViolation(err):
		return domainerrors.ErrProductWriteFailed.WrapMessage("missing required product information")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
