package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"talenthub-api/internal/api/handlers"
	"talenthub-api/internal/api/middleware"
	"talenthub-api/internal/config"
	"talenthub-api/internal/email"
	"talenthub-api/internal/extract"
	"talenthub-api/internal/identity"
	"talenthub-api/internal/otp"
	"talenthub-api/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	store *storage.Store,
	otpStore *otp.Store,
	mailer *email.Client,
	dispatcher *email.Dispatcher,
	authClient *identity.Client,
	extractor *extract.Extractor,
) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Selective timeout: 30s for most endpoints, 2 minutes for outreach
	// and AI extraction
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(store, otpStore))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(dispatcher))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// OTP routes are public: callers are not authenticated yet
		otpGroup := v1.Group("/auth/otp")
		{
			otpGroup.POST("/request", handlers.OTPRequestHandler(otpStore, mailer))
			otpGroup.POST("/verify", handlers.OTPVerifyHandler(otpStore))
		}

		// Everything else requires a resolved session
		auth := middleware.SessionAuth(authClient)

		jobs := v1.Group("/jobs", auth)
		{
			jobs.POST("/search", handlers.SearchJobsHandler(store))
			jobs.POST("/recommended",
				handlers.RecommendJobsHandler(cfg, store),
				middleware.RequireRole(identity.RoleCandidate))
		}

		candidates := v1.Group("/candidates", auth, middleware.RequireRole(identity.RoleRecruiter))
		{
			candidates.POST("/search", handlers.SearchCandidatesHandler(store))
			candidates.POST("/outreach", handlers.OutreachHandler(cfg, store, dispatcher))
		}

		profile := v1.Group("/profile", auth, middleware.RequireRole(identity.RoleCandidate))
		{
			profile.POST("/extract", handlers.ExtractProfileHandler(extractor))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "TalentHub API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
