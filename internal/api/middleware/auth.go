package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace-api/internal/api/metrics"
	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// identityKey is the echo.Context key holding the verified *domain.User.
const identityKey = "identity"

// Auth resolves the bearer token to a user through verifier and stores the
// user in the context. A missing header or a non-Bearer scheme is treated as
// no token at all.
func Auth(verifier ports.SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := verifier.Verify(c.Request().Context(), bearerToken(c))
			if err != nil {
				recordRejection(err)
				return err
			}

			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// Identity returns the user stored by Auth, or nil when the route is public.
func Identity(c echo.Context) *domain.User {
	u, _ := c.Get(identityKey).(*domain.User)
	return u
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func recordRejection(err error) {
	reason := domain.ReasonOf(err)
	if domain.KindOf(err) == domain.KindUpstream || reason == "" {
		reason = "upstream"
	}
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
}
