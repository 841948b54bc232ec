package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthub-api/internal/email"
	"talenthub-api/internal/logging"
	"talenthub-api/internal/otp"
	"talenthub-api/pkg/models"
	"talenthub-api/pkg/utils"
)

// OTPRequestHandler handles POST /api/v1/otp/request. The code is emailed
// synchronously so the caller learns about provider failures immediately.
func OTPRequestHandler(store *otp.Store, mailer *email.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req models.OTPRequest
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

		ctx := c.Request().Context()
		code, err := store.Issue(ctx, req.Purpose, req.Email)
		if err != nil {
			logger.Error("Failed to issue OTP", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return internalFailure(c, requestID, "Failed to issue verification code")
		}

		msg := email.Message{
			To:      req.Email,
			Subject: "Your verification code",
			HTML:    otpHTML(code, store.TTL()),
		}
		if _, err := mailer.Send(ctx, msg); err != nil {
			logger.Error("Failed to email OTP", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			appErr := utils.NewEmailError(err.Error())
			return c.JSON(appErr.Code, models.ErrorResponse{
				Error:     "email_failed",
				Message:   appErr.Message,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.OTPResponse{
			Sent:      true,
			ExpiresIn: store.TTL().String(),
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}
}

// OTPVerifyHandler handles POST /api/v1/otp/verify.
func OTPVerifyHandler(store *otp.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req models.OTPVerifyRequest
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

		result, err := store.Verify(c.Request().Context(), req.Purpose, req.Email, req.Code)
		if err != nil {
			logger.Error("OTP verification failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return internalFailure(c, requestID, "Failed to verify code")
		}

		return c.JSON(http.StatusOK, models.OTPVerifyResponse{
			Verified:     result.Verified,
			Expired:      result.Expired,
			AttemptsLeft: result.AttemptsLeft,
			RequestID:    requestID,
			Timestamp:    time.Now(),
		})
	}
}

func otpHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>",
		code, int(ttl.Minutes()))
}
