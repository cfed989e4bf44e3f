package handler

import (
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockusecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestEcho(t *testing.T) (*echo.Echo, *mockusecase.MockUserUsecase) {
	t.Helper()

	userUC := mockusecase.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: userUC, Logger: newDiscardLogger()})

	e := newTestEcho()
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.GET("/get-token", h.GetToken, asPrincipal(&entity.Principal{UserID: 7, Email: "a@b.com"}))
	e.GET("/get-token-ungated", h.GetToken)

	return e, userUC
}

func TestUserHandler_Register(t *testing.T) {
	e, userUC := newUserTestEcho(t)

	userUC.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Email: "u@x.com", Password: "pw1"}).
		Return(&usecase.RegisterOutput{User: &entity.User{ID: 1, Email: "u@x.com", PasswordHash: "secret-hash"}}, nil)

	rec := doJSON(t, e, http.MethodPost, "/register", map[string]string{"email": "u@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body RegisterResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.Equal(t, uint(1), body.User.ID)
	assert.Equal(t, "u@x.com", body.User.Email)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

func TestUserHandler_RegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing password", body: map[string]string{"email": "u@x.com"}},
		{name: "missing email", body: map[string]string{"password": "pw1"}},
		{name: "malformed email", body: map[string]string{"email": "not-an-email", "password": "pw1"}},
		{name: "malformed json", body: `{"email":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newUserTestEcho(t)

			rec := doJSON(t, e, http.MethodPost, "/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUserHandler_RegisterDuplicate(t *testing.T) {
	e, userUC := newUserTestEcho(t)

	userUC.EXPECT().
		Register(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	rec := doJSON(t, e, http.MethodPost, "/register", map[string]string{"email": "u@x.com", "password": "pw1"})
	require.Equal(t, http.StatusConflict, rec.Code)

	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Error.Code)
}

func TestUserHandler_Login(t *testing.T) {
	e, userUC := newUserTestEcho(t)
	expiresAt := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	userUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "u@x.com", Password: "pw1"}).
		Return(&usecase.LoginOutput{AccessToken: "token-value", ExpiresAt: expiresAt, User: &entity.User{ID: 1}}, nil)

	rec := doJSON(t, e, http.MethodPost, "/login", map[string]string{"email": "u@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body LoginResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, "token-value", body.Token)
	assert.True(t, expiresAt.Equal(body.ExpiresAt))
}

func TestUserHandler_LoginInvalidCredentials(t *testing.T) {
	e, userUC := newUserTestEcho(t)

	userUC.EXPECT().
		Login(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidCredentials)

	rec := doJSON(t, e, http.MethodPost, "/login", map[string]string{"email": "u@x.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestUserHandler_GetToken(t *testing.T) {
	e, _ := newUserTestEcho(t)

	rec := doJSON(t, e, http.MethodGet, "/get-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body TokenCheckResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, "Token is valid", body.Message)
	assert.Equal(t, uint(7), body.UserID)
	assert.Equal(t, "a@b.com", body.Email)

	rec = doJSON(t, e, http.MethodGet, "/get-token-ungated", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	e.GET("/health", HealthCheck)

	rec := doJSON(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"OK"`)
}
