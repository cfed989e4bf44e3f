package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// maxPrice is the largest value a numeric(12,2) price column holds.
var maxPrice = decimal.RequireFromString("9999999999.99")

type productService struct {
	txManager        repository.TransactionManager
	productRepo      repository.ProductRepository
	publisher        service.EventPublisher
	enforceOwnership bool
	now              func() time.Time
	logger           *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	enforceOwnership := false
	if params.Config != nil && params.Config.Product != nil {
		enforceOwnership = params.Config.Product.EnforceOwnership
	}

	return &productService{
		txManager:        params.TxManager,
		productRepo:      params.ProductRepo,
		publisher:        params.Publisher,
		enforceOwnership: enforceOwnership,
		now:              time.Now,
		logger:           params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a product owned by the caller.
func (srv *productService) Create(ctx context.Context, principal *entity.Principal, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := entity.NewProduct(toProductFields(input), principal.UserID)
	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Uint64("ownerID", uint64(principal.UserID)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Uint64("productID", uint64(product.ID)), slog.Uint64("ownerID", uint64(product.OwnerID)))
	srv.publish(ctx, service.ProductCreated, product, principal)

	return product, nil
}

// Get returns any product by ID.
func (srv *productService) Get(ctx context.Context, _ *entity.Principal, id uint) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductLookupError(err)
	}

	return product, nil
}

// ListMine returns the caller's products, oldest first.
func (srv *productService) ListMine(ctx context.Context, principal *entity.Principal) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// Update overwrites every mutable field of product id. The owner is kept from
// the stored record.
func (srv *productService) Update(ctx context.Context, principal *entity.Principal, id uint, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := srv.loadForWrite(ctx, productRepo, principal, id)
		if err != nil {
			return err
		}

		product.Apply(toProductFields(input))
		if err := productRepo.Update(ctx, product); err != nil {
			return mapProductLookupError(err)
		}
		updated = product

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Product update failed", slog.Uint64("productID", uint64(id)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Uint64("productID", uint64(id)))
	srv.publish(ctx, service.ProductUpdated, updated, principal)

	return updated, nil
}

// Delete removes product id.
func (srv *productService) Delete(ctx context.Context, principal *entity.Principal, id uint) error {
	var deleted *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := srv.loadForWrite(ctx, productRepo, principal, id)
		if err != nil {
			return err
		}

		if err := productRepo.Delete(ctx, id); err != nil {
			return mapProductLookupError(err)
		}
		deleted = product

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Product delete failed", slog.Uint64("productID", uint64(id)), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Uint64("productID", uint64(id)))
	srv.publish(ctx, service.ProductDeleted, deleted, principal)

	return nil
}

// loadForWrite fetches the target and applies the ownership rule when enabled.
func (srv *productService) loadForWrite(ctx context.Context, productRepo repository.ProductRepository, principal *entity.Principal, id uint) (*entity.Product, error) {
	product, err := productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductLookupError(err)
	}

	if srv.enforceOwnership && !product.IsOwnedBy(principal.UserID) {
		return nil, domainerrors.ErrProductOwnershipViolation.WrapMessage("caller does not own the product")
	}

	return product, nil
}

// publish emits a product event after commit. Failures are logged only.
func (srv *productService) publish(ctx context.Context, eventType service.ProductEventType, product *entity.Product, principal *entity.Principal) {
	if srv.publisher == nil {
		return
	}

	event := &service.ProductEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		ProductID:  product.ID,
		OwnerID:    product.OwnerID,
		ActorID:    principal.UserID,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishProductEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish product event",
			slog.String("type", string(eventType)),
			slog.Uint64("productID", uint64(product.ID)),
			slog.Any("error", err),
		)
	}
}

func validateProductInput(input *usecase.ProductInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WithDetails("product body is required")
	}
	if input.Price.IsNegative() {
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}
	if input.Price.GreaterThan(maxPrice) {
		return domainerrors.ErrValidationFailed.WithDetails("price must not exceed " + maxPrice.StringFixed(2))
	}
	if !input.Price.Equal(input.Price.Round(2)) {
		return domainerrors.ErrValidationFailed.WithDetails("price must have at most two decimal places")
	}

	return nil
}

func mapProductLookupError(err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return errors.Wrap(domainerrors.ErrProductNotFound, err.Error())
	}

	return err
}

func toProductFields(input *usecase.ProductInput) entity.ProductFields {
	return entity.ProductFields{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
}
