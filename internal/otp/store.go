package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
)

// redisCommands is the slice of the redis client the store uses. The
// concrete *redis.Client satisfies it; tests substitute an in-memory fake.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Result describes the outcome of a verification attempt.
type Result struct {
	Verified     bool
	Expired      bool
	AttemptsLeft int
}

// Store issues and verifies one-time codes backed by redis TTL records.
// Failed attempts are counted with INCR, so concurrent wrong submissions
// cannot slip past the attempt cap.
type Store struct {
	client      redisCommands
	ttl         time.Duration
	maxAttempts int
	logger      logging.Logger
}

// NewStore creates a new OTP store instance.
func NewStore(cfg *config.Config) *Store {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &Store{
		client:      redis.NewClient(opts),
		ttl:         cfg.OTP.TTL,
		maxAttempts: cfg.OTP.MaxAttempts,
		logger:      logging.GetGlobalLogger(),
	}
}

// Ping tests the redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// TTL returns the configured code lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Issue generates a fresh code for the email and purpose, replacing any
// outstanding one, and stores it with the configured TTL. The attempt
// counter for the previous code is discarded.
func (s *Store) Issue(ctx context.Context, purpose, email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	key := s.key(purpose, email)
	if err := s.client.Set(ctx, key, code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp code: %w", err)
	}
	if err := s.client.Del(ctx, s.attemptsKey(key)).Err(); err != nil {
		return "", fmt.Errorf("failed to reset otp attempts: %w", err)
	}

	s.logger.Debug("OTP issued", map[string]interface{}{
		"purpose": purpose,
		"ttl":     s.ttl.String(),
	})
	return code, nil
}

// Verify checks a submitted code. A correct code consumes the record
// (single use). A wrong code burns one attempt via an atomic INCR; the
// record is deleted once attempts are exhausted. A missing record reports
// Expired. The attempt counter never refreshes the code's TTL.
func (s *Store) Verify(ctx context.Context, purpose, email, code string) (Result, error) {
	key := s.key(purpose, email)
	attemptsKey := s.attemptsKey(key)

	stored, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return Result{Expired: true}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to load otp code: %w", err)
	}

	if stored == code {
		used, err := s.client.Get(ctx, attemptsKey).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			return Result{}, fmt.Errorf("failed to load otp attempts: %w", err)
		}
		if err := s.client.Del(ctx, key, attemptsKey).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to consume otp code: %w", err)
		}
		return Result{Verified: true, AttemptsLeft: s.maxAttempts - used}, nil
	}

	attempts, err := s.client.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to count otp attempt: %w", err)
	}
	if attempts == 1 {
		// Counter dies with the code; it never extends the code's life.
		if err := s.client.Expire(ctx, attemptsKey, s.ttl).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to bound otp attempts: %w", err)
		}
	}

	if int(attempts) >= s.maxAttempts {
		if err := s.client.Del(ctx, key, attemptsKey).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to delete exhausted otp code: %w", err)
		}
		return Result{AttemptsLeft: 0}, nil
	}

	return Result{AttemptsLeft: s.maxAttempts - int(attempts)}, nil
}

func (s *Store) key(purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, strings.ToLower(email))
}

func (s *Store) attemptsKey(key string) string {
	return key + ":attempts"
}

// GenerateCode produces a zero-padded 6-digit numeric code from a
// cryptographic source.
func GenerateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
