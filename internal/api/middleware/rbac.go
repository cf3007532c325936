package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace-api/internal/core/access"
	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := access.Authorize(Identity(c), allowed...); err != nil {
				recordRejection(err)
				return err
			}
			return next(c)
		}
	}
}
