package context

import (
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is where the auth gate stores the verified caller.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal records the verified caller on the request.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)
}

// GetPrincipal returns the caller stored by the auth gate.
// ok is false on routes that did not pass through it.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(string(KeyPrincipal)).(*entity.Principal)
	if !ok || principal == nil {
		return nil, false
	}

	return principal, true
}
