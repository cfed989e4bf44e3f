package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the health check request.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, &response.Message{Message: "OK"})
}
