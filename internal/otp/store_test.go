package otp

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"talenthub-api/internal/logging"
)

// fakeRedis keeps records in memory and tracks Set/Expire calls so tests
// can assert on TTL behavior.
type fakeRedis struct {
	data     map[string]string
	expires  map[string]time.Duration
	setCalls map[string]int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data:     map[string]string{},
		expires:  map[string]time.Duration{},
		setCalls: map[string]int{},
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	f.expires[key] = expiration
	f.setCalls[key]++
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			delete(f.expires, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Ping(_ context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error { return nil }

func newTestStore(fake *fakeRedis) *Store {
	return &Store{
		client:      fake,
		ttl:         10 * time.Minute,
		maxAttempts: 5,
		logger:      logging.GetGlobalLogger(),
	}
}

func TestGenerateCodeFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 0 || n > 999999 {
			t.Fatalf("code %q out of range", code)
		}
		seen[code] = true
	}
	// 200 draws from a million values should not collapse to a handful.
	if len(seen) < 100 {
		t.Errorf("only %d distinct codes in 200 draws", len(seen))
	}
}

func TestVerifyMissingRecordReportsExpired(t *testing.T) {
	s := newTestStore(newFakeRedis())

	res, err := s.Verify(context.Background(), "login", "user@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !res.Expired || res.Verified {
		t.Errorf("result = %+v, want expired and not verified", res)
	}
}

func TestVerifySuccessConsumesCode(t *testing.T) {
	s := newTestStore(newFakeRedis())
	ctx := context.Background()

	code, err := s.Issue(ctx, "signup", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	res, err := s.Verify(ctx, "signup", "user@example.com", code)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !res.Verified {
		t.Fatalf("correct code not verified: %+v", res)
	}
	if res.AttemptsLeft != 5 {
		t.Errorf("attempts left = %d, want 5 with no prior failures", res.AttemptsLeft)
	}

	// Single use: the same code must not verify twice.
	again, err := s.Verify(ctx, "signup", "user@example.com", code)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if again.Verified || !again.Expired {
		t.Errorf("consumed code verified again: %+v", again)
	}
}

func TestVerifyWrongCodeBurnsAttempts(t *testing.T) {
	s := newTestStore(newFakeRedis())
	ctx := context.Background()

	code, err := s.Issue(ctx, "login", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for i := 1; i < 5; i++ {
		res, err := s.Verify(ctx, "login", "user@example.com", "000000")
		if err != nil {
			t.Fatalf("verify attempt %d: %v", i, err)
		}
		if res.Verified || res.Expired {
			t.Fatalf("attempt %d: result = %+v, want plain mismatch", i, res)
		}
		if res.AttemptsLeft != 5-i {
			t.Errorf("attempt %d: attempts left = %d, want %d", i, res.AttemptsLeft, 5-i)
		}
	}

	// Fifth failure exhausts the cap and deletes the record.
	res, err := s.Verify(ctx, "login", "user@example.com", "000000")
	if err != nil {
		t.Fatalf("final attempt: %v", err)
	}
	if res.AttemptsLeft != 0 {
		t.Errorf("final attempt: attempts left = %d, want 0", res.AttemptsLeft)
	}

	// Even the correct code is dead now.
	dead, err := s.Verify(ctx, "login", "user@example.com", code)
	if err != nil {
		t.Fatalf("post-exhaustion verify: %v", err)
	}
	if dead.Verified || !dead.Expired {
		t.Errorf("exhausted code still live: %+v", dead)
	}
}

func TestVerifySuccessAfterFailuresReportsRemaining(t *testing.T) {
	s := newTestStore(newFakeRedis())
	ctx := context.Background()

	code, err := s.Issue(ctx, "reset_password", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Verify(ctx, "reset_password", "user@example.com", "999999"); err != nil {
			t.Fatalf("wrong attempt %d: %v", i, err)
		}
	}

	res, err := s.Verify(ctx, "reset_password", "user@example.com", code)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !res.Verified {
		t.Fatalf("correct code not verified after failures: %+v", res)
	}
	if res.AttemptsLeft != 3 {
		t.Errorf("attempts left = %d, want 3 after two failures", res.AttemptsLeft)
	}
}

func TestFailedAttemptsDoNotRefreshCodeTTL(t *testing.T) {
	fake := newFakeRedis()
	s := newTestStore(fake)
	ctx := context.Background()

	if _, err := s.Issue(ctx, "login", "user@example.com"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	key := s.key("login", "user@example.com")

	for i := 0; i < 3; i++ {
		if _, err := s.Verify(ctx, "login", "user@example.com", "000000"); err != nil {
			t.Fatalf("wrong attempt %d: %v", i, err)
		}
	}

	// The code key was written exactly once, at issue time; wrong
	// submissions never rewrite it or extend its TTL.
	if fake.setCalls[key] != 1 {
		t.Errorf("code key written %d times, want 1", fake.setCalls[key])
	}
	if fake.expires[key] != 10*time.Minute {
		t.Errorf("code ttl = %v, want the issue-time 10m", fake.expires[key])
	}
	if fake.expires[s.attemptsKey(key)] != 10*time.Minute {
		t.Errorf("attempt counter ttl = %v, want bounded to 10m", fake.expires[s.attemptsKey(key)])
	}
}

func TestIssueResetsAttemptCounter(t *testing.T) {
	s := newTestStore(newFakeRedis())
	ctx := context.Background()

	if _, err := s.Issue(ctx, "login", "user@example.com"); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Verify(ctx, "login", "user@example.com", "000000"); err != nil {
			t.Fatalf("wrong attempt %d: %v", i, err)
		}
	}

	// A fresh code starts with a clean attempt budget.
	if _, err := s.Issue(ctx, "login", "user@example.com"); err != nil {
		t.Fatalf("second issue: %v", err)
	}
	res, err := s.Verify(ctx, "login", "user@example.com", "000000")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if res.AttemptsLeft != 4 {
		t.Errorf("attempts left = %d, want 4 after one failure on a fresh code", res.AttemptsLeft)
	}
}
