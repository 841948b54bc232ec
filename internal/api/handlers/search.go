package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"talenthub-api/internal/api/validation"
	"talenthub-api/internal/logging"
	"talenthub-api/internal/matching"
	"talenthub-api/internal/storage"
	"talenthub-api/pkg/models"
	"talenthub-api/pkg/utils"
)

var requestValidator = validator.New()

func init() {
	// Register shared search validators
	validation.RegisterSearchValidators(requestValidator)
}

// SearchCandidatesHandler handles POST /api/v1/candidates/search. Hard
// filters run in the database; relevance scoring happens on the returned
// page.
func SearchCandidatesHandler(store *storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var filters models.SearchFilters
		if err := c.Bind(&filters); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request body: " + err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if err := requestValidator.Struct(&filters); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		page, total, err := store.FetchCandidatePage(c.Request().Context(), filters)
		if err != nil {
			logger.Error("Candidate search failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return storageFailure(c, requestID)
		}

		scored := matching.ScoreCandidates(filters, page)

		normalized := filters.Normalized()
		logger.Info("Candidate search completed", map[string]interface{}{
			"request_id": requestID,
			"total":      total,
			"page":       normalized.Page,
		})

		return c.JSON(http.StatusOK, models.CandidateSearchResponse{
			Candidates: scored,
			TotalCount: total,
			Page:       normalized.Page,
			PageSize:   normalized.PageSize,
			TotalPages: storage.TotalPages(total, normalized.PageSize),
			RequestID:  requestID,
			Timestamp:  time.Now(),
		})
	}
}

// SearchJobsHandler handles POST /api/v1/jobs/search. Jobs carry no
// relevance score; ordering is whatever the sort mode dictates.
func SearchJobsHandler(store *storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var filters models.SearchFilters
		if err := c.Bind(&filters); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request body: " + err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if err := requestValidator.Struct(&filters); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		jobs, total, err := store.SearchJobs(c.Request().Context(), filters)
		if err != nil {
			logger.Error("Job search failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return storageFailure(c, requestID)
		}

		normalized := filters.Normalized()
		return c.JSON(http.StatusOK, models.JobSearchResponse{
			Jobs:       jobs,
			TotalCount: total,
			Page:       normalized.Page,
			PageSize:   normalized.PageSize,
			TotalPages: storage.TotalPages(total, normalized.PageSize),
			RequestID:  requestID,
			Timestamp:  time.Now(),
		})
	}
}
