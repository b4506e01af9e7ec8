package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/ecommerce-api/internal/api/metrics"
	"github.com/shopstack/ecommerce-api/internal/auth"
	"github.com/shopstack/ecommerce-api/internal/core/domain"
	"github.com/shopstack/ecommerce-api/internal/core/ports"
)

// Machine-readable rejection codes attached to guard responses.
const (
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeInsufficientPerms  = "INSUFFICIENT_PERMISSIONS"
	CodeInternalError      = "INTERNAL_ERROR"
)

const identityKey = "identity"

type guardError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Authenticate validates the bearer token and resolves the live user record.
// Token claims are never trusted for role or activity: the user row is
// re-fetched on every request, so a deactivation takes effect on the very
// next call rather than at token expiry.
func Authenticate(codec *auth.TokenCodec, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return reject(c, http.StatusUnauthorized, "Access denied. No token provided.", CodeNoToken)
			}

			claims, err := codec.Verify(token)
			if err != nil {
				return reject(c, http.StatusUnauthorized, "Access denied. Invalid token.", CodeInvalidToken)
			}

			user, err := repo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject(c, http.StatusUnauthorized, "Access denied. User not found.", CodeUserNotFound)
				}
				return reject(c, http.StatusInternalServerError, "Internal server error during authentication", CodeInternalError)
			}

			if !user.IsActive {
				return reject(c, http.StatusUnauthorized, "Access denied. Account is deactivated.", CodeAccountDeactivated)
			}

			c.Set(identityKey, domain.IdentityOf(user))
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity attached by Authenticate.
func CurrentIdentity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func reject(c echo.Context, status int, message, code string) error {
	metrics.GuardRejectionsTotal.WithLabelValues(code).Inc()
	return c.JSON(status, guardError{Message: message, Code: code})
}
