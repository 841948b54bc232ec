package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/config"
	"talenthub-api/internal/email"
	"talenthub-api/internal/logging"
	"talenthub-api/internal/matching"
	"talenthub-api/internal/storage"
	"talenthub-api/pkg/models"
	"talenthub-api/pkg/utils"
)

// OutreachHandler handles POST /api/v1/candidates/outreach. It ranks the
// filtered candidates by relevance, sanitizes the recruiter's HTML once,
// and queues one email per candidate on the dispatcher.
func OutreachHandler(cfg *config.Config, store *storage.Store, dispatcher *email.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req models.OutreachRequest
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

		topN := req.TopN
		if topN <= 0 {
			topN = cfg.Outreach.DefaultN
		}

		// Rank by relevance regardless of the requested sort; outreach
		// always targets the best matches.
		filters := req.Filters
		filters.SortBy = models.SortRelevance
		filters.Page = 1
		filters.PageSize = models.MaxPageSize

		page, _, err := store.FetchCandidatePage(c.Request().Context(), filters)
		if err != nil {
			logger.Error("Outreach candidate lookup failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return storageFailure(c, requestID)
		}

		ranked := matching.ScoreCandidates(filters, page)
		if len(ranked) > topN {
			ranked = ranked[:topN]
		}

		safeHTML, err := email.SanitizeHTML(req.HTML)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_html",
				Message:   "Message body could not be parsed: " + err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		var queued, skipped int
		var queueFull bool
		for _, candidate := range ranked {
			if candidate.Email == "" {
				skipped++
				continue
			}
			msg := email.Message{
				To:      candidate.Email,
				Subject: req.Subject,
				HTML:    safeHTML,
			}
			if err := dispatcher.Enqueue(msg); err != nil {
				skipped++
				if errors.Is(err, email.ErrQueueFull) {
					queueFull = true
				}
				logger.Warn("Outreach email dropped", map[string]interface{}{
					"request_id": requestID,
					"error":      err.Error(),
				})
				continue
			}
			queued++
		}

		// A fully saturated queue that accepted nothing is a service
		// condition, not a partial success.
		if queueFull && queued == 0 {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "queue_full",
				Message:   "Outbound email queue is full, try again later",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Outreach batch queued", map[string]interface{}{
			"request_id": requestID,
			"queued":     queued,
			"skipped":    skipped,
		})

		return c.JSON(http.StatusAccepted, models.OutreachResponse{
			Queued:    queued,
			Skipped:   skipped,
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}
}
