package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/pkg/models"
)

// storageFailure writes the uniform 500 envelope for failed storage calls.
// The underlying error is logged by the caller, not leaked to the client.
func storageFailure(c echo.Context, requestID string) error {
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "storage_failed",
		Message:   "Storage query failed",
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

// internalFailure writes a generic 500 envelope.
func internalFailure(c echo.Context, requestID, message string) error {
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
