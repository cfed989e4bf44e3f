// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenCheckResponse confirms that the presented token was accepted.
type TokenCheckResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
	Email   string `json:"email"`
}

// Register handles user registration.
func (h *UserHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &RegisterResponse{
		Message: "User registered successfully",
		User:    &UserResponse{ID: output.User.ID, Email: output.User.Email},
	})
}

// Login handles user login.
func (h *UserHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &LoginResponse{
		Token:     output.AccessToken,
		ExpiresAt: output.ExpiresAt,
	})
}

// GetToken reports that the bearer token passed the auth gate.
func (h *UserHandler) GetToken(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	return response.Success(c, http.StatusOK, &TokenCheckResponse{
		Message: "Token is valid",
		UserID:  principal.UserID,
		Email:   principal.Email,
	})
}
