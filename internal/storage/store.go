package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
	"talenthub-api/pkg/models"
)

// Store provides page-level access to candidate and job records. It is the
// only place that issues SQL; the scoring core consumes the returned
// in-memory records.
type Store struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// New connects to PostgreSQL and verifies the connection.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.ConnConfig.ConnectTimeout = cfg.Database.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool:   pool,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// FetchCandidatePage returns one page of candidates matching the hard
// filters along with the unpaginated total count.
func (s *Store) FetchCandidatePage(ctx context.Context, filters models.SearchFilters) ([]models.CandidateRecord, int, error) {
	dataSQL, countSQL, args := buildCandidateQuery(filters, time.Now())

	var total int
	countArgs := args[:len(args)-2] // data query appends limit and offset last
	if err := s.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var records []models.CandidateRecord
	for rows.Next() {
		var rec models.CandidateRecord
		var education string
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.FullName, &rec.Email,
			&rec.Headline, &rec.About, &rec.Summary,
			&rec.Skills, &rec.Location,
			&rec.ExperienceYears, &rec.ExpectedSalaryMin, &rec.ExpectedSalaryMax,
			&education, &rec.WorkPreferences,
			&rec.ResumeURL, &rec.PhotoURL,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		rec.EducationLevel = models.EducationLevel(education)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read candidate rows: %w", err)
	}

	return records, total, nil
}

// SearchJobs returns one page of active jobs matching the hard filters
// along with the unpaginated total count.
func (s *Store) SearchJobs(ctx context.Context, filters models.SearchFilters) ([]models.JobRecord, int, error) {
	dataSQL, countSQL, args := buildJobQuery(filters, time.Now())

	var total int
	countArgs := args[:len(args)-2]
	if err := s.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FetchActiveJobs returns the newest active jobs, capped at limit. The
// recommender scores and re-orders this set in memory.
func (s *Store) FetchActiveJobs(ctx context.Context, limit int) ([]models.JobRecord, error) {
	sql := fmt.Sprintf("SELECT %s FROM jobs WHERE active = TRUE ORDER BY created_at DESC LIMIT $1", jobColumns)

	rows, err := s.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query active jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]models.JobRecord, error) {
	var jobs []models.JobRecord
	for rows.Next() {
		var job models.JobRecord
		var education string
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Location,
			&job.SkillsRequired,
			&job.ExperienceMin, &job.ExperienceMax, &job.SalaryMin, &job.SalaryMax,
			&education, &job.Active, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		job.EducationRequired = models.EducationLevel(education)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job rows: %w", err)
	}
	return jobs, nil
}

// GetCandidateProfile loads the scoring profile for a user. A missing
// profile is not an error: the recommender degrades to recency ordering.
func (s *Store) GetCandidateProfile(ctx context.Context, userID string) (*models.CandidateProfile, error) {
	const sql = `SELECT user_id, email, COALESCE(skills, '{}'), COALESCE(location, ''),
		experience_years, expected_salary_min, expected_salary_max,
		COALESCE(education_level, '')
	FROM candidates WHERE user_id = $1`

	var p models.CandidateProfile
	var education string
	err := s.pool.QueryRow(ctx, sql, userID).Scan(
		&p.UserID, &p.Email, &p.Skills, &p.Location,
		&p.ExperienceYears, &p.ExpectedSalaryMin, &p.ExpectedSalaryMax,
		&education,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate profile: %w", err)
	}
	p.EducationLevel = models.EducationLevel(education)
	return &p, nil
}

// ListDigestSubscribers returns profiles of candidates who opted into the
// daily job digest email.
func (s *Store) ListDigestSubscribers(ctx context.Context) ([]models.CandidateProfile, error) {
	const sql = `SELECT user_id, email, COALESCE(skills, '{}'), COALESCE(location, ''),
		experience_years, expected_salary_min, expected_salary_max,
		COALESCE(education_level, '')
	FROM candidates WHERE digest_opt_in = TRUE AND email <> ''`

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query digest subscribers: %w", err)
	}
	defer rows.Close()

	var profiles []models.CandidateProfile
	for rows.Next() {
		var p models.CandidateProfile
		var education string
		if err := rows.Scan(
			&p.UserID, &p.Email, &p.Skills, &p.Location,
			&p.ExperienceYears, &p.ExpectedSalaryMin, &p.ExpectedSalaryMax,
			&education,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		p.EducationLevel = models.EducationLevel(education)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscriber rows: %w", err)
	}
	return profiles, nil
}

// DeactivateExpiredJobs marks jobs older than maxAge as inactive and
// returns the number of postings touched.
func (s *Store) DeactivateExpiredJobs(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	tag, err := s.pool.Exec(ctx,
		"UPDATE jobs SET active = FALSE, updated_at = NOW() WHERE active = TRUE AND created_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
