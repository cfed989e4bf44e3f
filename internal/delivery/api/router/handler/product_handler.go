package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for product handlers.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// ProductRequest is the body of create and update. The owner is always the caller.
type ProductRequest struct {
	Name        string           `json:"name" form:"name" validate:"required,max=255"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Description string           `json:"description" form:"description" validate:"required"`
	ImageURL    string           `json:"imageUrl" form:"imageUrl" validate:"required,url"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	OwnerID     uint      `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductMutationResponse is returned by create and update.
type ProductMutationResponse struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product"`
}

// CreateProduct handles product creation for the caller.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	input, err := bindProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.productUC.Create(c.Request().Context(), principal, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &ProductMutationResponse{
		Message: "Product created successfully",
		Product: toProductResponse(product),
	})
}

// GetProduct returns a single product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.productUC.Get(c.Request().Context(), principal, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// ListProducts returns the caller's products.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	products, err := h.productUC.ListMine(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	items := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, toProductResponse(product))
	}

	return response.Success(c, http.StatusOK, items)
}

// UpdateProduct replaces the mutable fields of a product.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	input, err := bindProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.productUC.Update(c.Request().Context(), principal, id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &ProductMutationResponse{
		Message: "Product updated successfully",
		Product: toProductResponse(product),
	})
}

// DeleteProduct removes a product.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	if err := h.productUC.Delete(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &response.Message{Message: "Product deleted successfully"})
}

func bindProductInput(c echo.Context) (*usecase.ProductInput, error) {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return nil, errors.WithStack(err)
	}

	if req.Price == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price is required")
	}

	return &usecase.ProductInput{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, nil
}

func parseProductID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("product id must be a positive integer")
	}

	return uint(id), nil
}

func toProductResponse(product *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price.StringFixed(2),
		Description: product.Description,
		ImageURL:    product.ImageURL,
		OwnerID:     product.OwnerID,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
