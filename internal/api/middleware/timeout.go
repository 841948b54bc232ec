package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// Endpoints allowed the extended timeout. Outreach fans out over the email
// queue and extraction waits on the LLM; both outlive the default window.
var extendedTimeoutPaths = map[string]bool{
	"/api/v1/candidates/outreach": true,
	"/api/v1/profile/extract":     true,
}

// SelectiveTimeoutConfig applies defaultTimeout to every request except the
// long-running endpoints, which get extendedTimeout.
func SelectiveTimeoutConfig(defaultTimeout, extendedTimeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timeout := defaultTimeout
			if extendedTimeoutPaths[c.Path()] {
				timeout = extendedTimeout
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
