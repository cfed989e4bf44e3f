package service

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the claims carried by a bearer token. The subject holds the
// user ID as a decimal string.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	// Issue signs a token for user that expires one hour after issuance.
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)

	// Verify checks signature, expiry, issuer and audience and returns the
	// authenticated principal.
	Verify(token string) (*entity.Principal, error)
}
