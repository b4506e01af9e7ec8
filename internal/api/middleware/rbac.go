package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/ecommerce-api/internal/api/metrics"
)

type forbiddenError struct {
	Message  string   `json:"message"`
	Code     string   `json:"code"`
	Required []string `json:"required"`
	Current  string   `json:"current"`
}

// Authorize enforces a role allow-list. It must run after Authenticate; a
// request that reaches it without an identity gets 401 rather than 403.
// The 403 body names the required roles and the caller's actual role.
func Authorize(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentIdentity(c)
			if !ok {
				return reject(c, http.StatusUnauthorized, "Access denied. Authentication required.", CodeNotAuthenticated)
			}

			if _, ok := allowed[identity.Role]; !ok {
				return rejectForbidden(c, allowedRoles, identity.Role)
			}
			return next(c)
		}
	}
}

func rejectForbidden(c echo.Context, required []string, current string) error {
	metrics.GuardRejectionsTotal.WithLabelValues(CodeInsufficientPerms).Inc()
	return c.JSON(http.StatusForbidden, forbiddenError{
		Message:  "Access denied. Insufficient permissions.",
		Code:     CodeInsufficientPerms,
		Required: required,
		Current:  current,
	})
}
