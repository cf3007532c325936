package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace-api/internal/api/middleware"
	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// ctxUser returns the identity verified by the Auth middleware. Handlers
// read it once and pass it explicitly to the use case.
func ctxUser(c echo.Context) (*domain.User, error) {
	u := middleware.Identity(c)
	if u == nil {
		return nil, domain.ErrNoToken
	}
	return u, nil
}
