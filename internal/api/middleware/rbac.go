package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// RoleTable is the explicit route-registration table mapping
// (method, registered path) to a required-role set. Routes register their
// requirement at wiring time; the RBAC middleware consults the table per
// request. An empty required set means "any authenticated user".
type RoleTable struct {
	required map[string][]domain.Role
}

func NewRoleTable() *RoleTable {
	return &RoleTable{required: make(map[string][]domain.Role)}
}

// Register attaches a required-role set to a route. path must be the
// registered echo path (e.g. "/products/:criteria"), not a concrete URL.
func (t *RoleTable) Register(method, path string, roles ...domain.Role) {
	t.required[method+" "+path] = roles
}

// Required returns the role set declared for the route and whether any
// declaration exists at all.
func (t *RoleTable) Required(method, path string) ([]domain.Role, bool) {
	roles, ok := t.required[method+" "+path]
	return roles, ok
}

// AccessAuditor receives the outcome of every role check. Implementations
// must not block.
type AccessAuditor interface {
	Record(event domain.AccessEvent)
}

// RequireRoles enforces the role table for the current route. It must run
// after Auth. The engine fails closed: a guarded route with no table
// entry, or a missing identity, is a configuration defect answered with
// an internal error, never a silent allow. Denials are verbose 403s
// naming the caller's roles and the requirement.
func RequireRoles(table *RoleTable, auditor AccessAuditor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Identity(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "user not found in request context")
			}

			method := c.Request().Method
			route := c.Path()

			required, ok := table.Required(method, route)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "no role requirement registered for this route")
			}

			if len(required) == 0 || user.HasAnyRole(required) {
				audit(auditor, user, method, route, domain.DecisionAllowed, "")
				return next(c)
			}

			reason := fmt.Sprintf("user with roles %v is not allowed to access this resource, requires one of %v",
				user.Roles, required)
			audit(auditor, user, method, route, domain.DecisionDenied, reason)
			return echo.NewHTTPError(http.StatusForbidden, reason)
		}
	}
}

func audit(auditor AccessAuditor, user *domain.User, method, route string, decision domain.AccessDecision, reason string) {
	if auditor == nil {
		return
	}
	auditor.Record(domain.AccessEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     user.Roles,
		Method:    method,
		Route:     route,
		Decision:  decision,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
