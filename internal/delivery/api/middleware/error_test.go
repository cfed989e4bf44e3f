package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(err, c)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_AppErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails any
	}{
		{
			name:        "validation details are shown",
			err:         errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("email is required")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantDetails: "email is required",
		},
		{
			name:       "conflict",
			err:        domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"),
			wantStatus: http.StatusConflict,
			wantCode:   "USER_ALREADY_EXISTS",
		},
		{
			name:       "unauthenticated",
			err:        domainerrors.ErrUnauthenticated.WrapMessage("token expired"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:       "database details are hidden",
			err:        domainerrors.NewDatabaseExecuteError(io.ErrUnexpectedEOF, "failed to create user"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "DATABASE_EXECUTE_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := renderError(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
		})
	}
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	rec, body = renderError(t, echo.NewHTTPError(http.StatusRequestEntityTooLarge))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", body.Error.Code)
}

func TestErrorMiddleware_UnknownErrorIsHidden(t *testing.T) {
	rec, body := renderError(t, errors.New("connection string with password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "hunter2"))
}

func TestErrorMiddleware_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusTeapot, "already sent"))

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(domainerrors.ErrInternalError, c)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "already sent", rec.Body.String())
}
