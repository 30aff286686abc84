package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tesloshop/catalog-api/internal/api/middleware"
	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Auth middleware and
// fast-fails before any service call. A missing identity on a protected
// route means the middleware chain is miswired.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.Identity(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "user not found in request context")
	}
	return user, nil
}
