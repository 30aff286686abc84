package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// identityKey is the context key the auth middleware stores the resolved
// user under. Handlers read it through Identity, never directly.
const identityKey = "identity"

// Auth validates the bearer token, resolves it to a stored user and
// injects the identity into the request context. Every authentication
// failure is a generic 401: the response never reveals whether the
// account exists or what the route additionally requires.
func Auth(tokens ports.TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "user is inactive, check with the administrator")
			}

			SetIdentity(c, user)
			return next(c)
		}
	}
}

// SetIdentity stores the resolved user in the request context.
func SetIdentity(c echo.Context, user *domain.User) {
	c.Set(identityKey, user)
}

// Identity returns the user injected by Auth, or nil when the middleware
// did not run.
func Identity(c echo.Context) *domain.User {
	user, _ := c.Get(identityKey).(*domain.User)
	return user
}
