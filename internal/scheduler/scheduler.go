package scheduler

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"talenthub-api/internal/config"
	"talenthub-api/internal/email"
	"talenthub-api/internal/logging"
	"talenthub-api/internal/matching"
	"talenthub-api/internal/storage"
	"talenthub-api/pkg/models"
)

// Scheduler runs the recurring background jobs: the daily recommendation
// digest and stale job cleanup.
type Scheduler struct {
	cron       *cron.Cron
	config     *config.Config
	store      *storage.Store
	dispatcher *email.Dispatcher
	logger     logging.Logger
}

// New creates a scheduler. Start registers the cron entries and begins
// running them.
func New(cfg *config.Config, store *storage.Store, dispatcher *email.Dispatcher) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		config:     cfg,
		store:      store,
		dispatcher: dispatcher,
		logger:     logging.GetGlobalLogger(),
	}
}

// Start registers the digest and cleanup entries and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.Scheduler.DigestSpec, s.runDigest); err != nil {
		return fmt.Errorf("failed to schedule digest job: %w", err)
	}
	if _, err := s.cron.AddFunc(s.config.Scheduler.CleanupSpec, s.runCleanup); err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", map[string]interface{}{
		"digest_spec":  s.config.Scheduler.DigestSpec,
		"cleanup_spec": s.config.Scheduler.CleanupSpec,
	})
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish, bounded
// by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("Scheduler stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runDigest emails each opted-in candidate their current top recommended
// jobs. A subscriber with no scoreable jobs is skipped rather than sent an
// empty digest.
func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	subscribers, err := s.store.ListDigestSubscribers(ctx)
	if err != nil {
		s.logger.Error("Digest run failed to list subscribers", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if len(subscribers) == 0 {
		return
	}

	jobs, err := s.store.FetchActiveJobs(ctx, s.config.Matching.JobFetchLimit)
	if err != nil {
		s.logger.Error("Digest run failed to load jobs", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	var sent, skipped int
	for i := range subscribers {
		profile := subscribers[i]
		ranked := matching.RecommendJobs(&profile, jobs, s.config.Scheduler.DigestJobs)
		if len(ranked) == 0 {
			skipped++
			continue
		}

		msg := email.Message{
			To:      profile.Email,
			Subject: "Your daily job matches",
			HTML:    digestHTML(ranked),
		}
		if err := s.dispatcher.Enqueue(msg); err != nil {
			skipped++
			s.logger.Warn("Digest email dropped", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		sent++
	}

	s.logger.Info("Digest run completed", map[string]interface{}{
		"subscribers": len(subscribers),
		"queued":      sent,
		"skipped":     skipped,
	})
}

// runCleanup deactivates postings older than the configured maximum age.
func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.store.DeactivateExpiredJobs(ctx, s.config.Scheduler.JobMaxAge)
	if err != nil {
		s.logger.Error("Cleanup run failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.logger.Info("Cleanup run completed", map[string]interface{}{
		"deactivated": n,
	})
}

func digestHTML(jobs []models.ScoredJob) string {
	var b strings.Builder
	b.WriteString("<h2>Jobs picked for you</h2><ul>")
	for _, job := range jobs {
		b.WriteString("<li><strong>")
		b.WriteString(html.EscapeString(job.Title))
		b.WriteString("</strong> at ")
		b.WriteString(html.EscapeString(job.Company))
		if job.Location != "" {
			b.WriteString(" (")
			b.WriteString(html.EscapeString(job.Location))
			b.WriteString(")")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
