package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/extract"
	"talenthub-api/internal/logging"
	"talenthub-api/pkg/models"
	"talenthub-api/pkg/utils"
)

// ExtractProfileHandler handles POST /api/v1/profile/extract. Raw resume
// text goes to the LLM; the structured profile comes back for the client to
// review before saving.
func ExtractProfileHandler(extractor *extract.Extractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req models.ExtractProfileRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request body: " + err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if err := requestValidator.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := extractor.IsHealthy(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "extraction_unavailable",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		profile, err := extractor.ExtractProfile(c.Request().Context(), req.ResumeText)
		if err != nil {
			logger.Error("Resume extraction failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			appErr := utils.NewExtractionError(err.Error())
			return c.JSON(appErr.Code, models.ErrorResponse{
				Error:     "extraction_failed",
				Message:   appErr.Message,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.ExtractProfileResponse{
			Profile:   profile,
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}
}
