package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerScheme = "Bearer"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware gates routes behind a verified bearer token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService, logger: params.Logger}
}

// Authenticate verifies the Authorization header and stores the caller's
// principal. Handlers behind it never run without one.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}

		principal, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected bearer token", slog.Any("error", err))

			return errors.WithStack(err)
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domainerrors.ErrUnauthenticated.WrapMessage("authorization header is missing")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", domainerrors.ErrUnauthenticated.WrapMessage("authorization header must use the Bearer scheme")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domainerrors.ErrUnauthenticated.WrapMessage("bearer token is empty")
	}

	return token, nil
}
