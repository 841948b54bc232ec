package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/email"
	"talenthub-api/pkg/utils"
)

// StatusHandler provides detailed service status, including the outbound
// email queue counters.
func StatusHandler(dispatcher *email.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"service":   "TalentHub API",
			"version":   "1.0.0",
			"status":    "running",
			"uptime":    utils.FormatDuration(time.Since(startTime)),
			"timestamp": time.Now(),
			"email":     dispatcher.Stats(),
		})
	}
}
