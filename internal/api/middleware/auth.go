package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/identity"
	"talenthub-api/pkg/models"
)

const identityContextKey = "identity"

// TokenResolver exchanges a bearer token for the caller's identity.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*identity.Identity, error)
}

// SessionAuth authenticates requests against the auth service and stores
// the resolved identity on the echo context.
func SessionAuth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return unauthorized(c, "Missing bearer token")
			}

			id, err := resolver.Resolve(c.Request().Context(), token)
			if errors.Is(err, identity.ErrUnauthorized) {
				return unauthorized(c, "Session token rejected")
			}
			if err != nil {
				return c.JSON(http.StatusBadGateway, models.ErrorResponse{
					Error:     "auth_unavailable",
					Message:   "Authentication service unavailable",
					RequestID: requestID(c),
					Timestamp: time.Now(),
				})
			}

			c.Set(identityContextKey, id)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose resolved role is not in the allow list.
// Admins pass every guard.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id == nil {
				return unauthorized(c, "Missing bearer token")
			}
			if id.Role == identity.RoleAdmin {
				return next(c)
			}
			for _, role := range roles {
				if id.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:     "forbidden",
				Message:   "Insufficient role for this operation",
				RequestID: requestID(c),
				Timestamp: time.Now(),
			})
		}
	}
}

// IdentityFrom returns the authenticated identity stored by SessionAuth,
// or nil when the request is unauthenticated.
func IdentityFrom(c echo.Context) *identity.Identity {
	id, _ := c.Get(identityContextKey).(*identity.Identity)
	return id
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:     "unauthorized",
		Message:   msg,
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	return ""
}
