package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/api/middleware"
	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
	"talenthub-api/internal/matching"
	"talenthub-api/internal/storage"
	"talenthub-api/pkg/models"
	"talenthub-api/pkg/utils"
)

// RecommendJobsHandler handles POST /api/v1/jobs/recommended. It scores the
// newest active jobs against the caller's profile. A caller without a
// profile still gets a degraded recency-ordered list.
func RecommendJobsHandler(cfg *config.Config, store *storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req models.RecommendJobsRequest
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

		id := middleware.IdentityFrom(c)
		ctx := c.Request().Context()

		profile, err := store.GetCandidateProfile(ctx, id.UserID)
		if err != nil {
			logger.Error("Failed to load candidate profile", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return storageFailure(c, requestID)
		}

		jobs, err := store.FetchActiveJobs(ctx, cfg.Matching.JobFetchLimit)
		if err != nil {
			logger.Error("Failed to load active jobs", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return storageFailure(c, requestID)
		}

		limit := req.Limit
		if limit <= 0 {
			limit = cfg.Matching.RecommendLimit
		}

		ranked := matching.RecommendJobs(profile, jobs, limit)

		logger.Info("Job recommendations computed", map[string]interface{}{
			"request_id": requestID,
			"user_id":    id.UserID,
			"jobs":       len(ranked),
			"degraded":   profile == nil,
		})

		return c.JSON(http.StatusOK, models.RecommendJobsResponse{
			Jobs:      ranked,
			Degraded:  profile == nil,
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}
}
