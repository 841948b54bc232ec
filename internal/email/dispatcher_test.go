package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"talenthub-api/internal/config"
)

func testConfig(baseURL string, poolSize, queueSize int) *config.Config {
	cfg := &config.Config{}
	cfg.Email.BaseURL = baseURL
	cfg.Email.From = "no-reply@test.local"
	cfg.Email.Timeout = 2 * time.Second
	cfg.Email.MaxRetries = 0
	cfg.Email.RateLimit = 6000
	cfg.Outreach.PoolSize = poolSize
	cfg.Outreach.QueueSize = queueSize
	return cfg
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	var received atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"message_id": "m-1"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 2, 16)
	d := NewDispatcher(cfg, NewClient(cfg))
	d.Start()

	for i := 0; i < 5; i++ {
		if err := d.Enqueue(Message{To: "a@b.c", Subject: "s", HTML: "<p>hi</p>"}); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if got := received.Load(); got != 5 {
		t.Errorf("provider received %d sends, want 5", got)
	}
	stats := d.Stats()
	if stats.Delivered != 5 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 5 delivered and 0 failed", stats)
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	cfg := testConfig("http://unused.local", 1, 2)
	d := NewDispatcher(cfg, NewClient(cfg))
	// Not started: nothing drains the queue.

	if err := d.Enqueue(Message{To: "a@b.c"}); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := d.Enqueue(Message{To: "a@b.c"}); err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if err := d.Enqueue(Message{To: "a@b.c"}); err != ErrQueueFull {
		t.Errorf("third enqueue err = %v, want ErrQueueFull", err)
	}
}

func TestDispatcherEnqueueAfterShutdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message_id": "m-1"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 1, 4)
	d := NewDispatcher(cfg, NewClient(cfg))
	d.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	// A late submit must be rejected cleanly, never panic on the closed
	// queue.
	if err := d.Enqueue(Message{To: "late@b.c"}); err != ErrQueueFull {
		t.Errorf("enqueue after shutdown err = %v, want ErrQueueFull", err)
	}
}

func TestDispatcherCountsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad recipient"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 1, 4)
	d := NewDispatcher(cfg, NewClient(cfg))
	d.Start()

	if err := d.Enqueue(Message{To: "broken@b.c"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	stats := d.Stats()
	if stats.Failed != 1 || stats.Delivered != 0 {
		t.Errorf("stats = %+v, want 1 failed and 0 delivered", stats)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message_id": "m-2"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 1, 1)
	cfg.Email.MaxRetries = 2
	client := NewClient(cfg)

	id, err := client.Send(context.Background(), Message{To: "a@b.c", Subject: "s"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "m-2" {
		t.Errorf("message id = %q, want m-2", id)
	}
	if calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid recipient"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 1, 1)
	cfg.Email.MaxRetries = 3
	client := NewClient(cfg)

	if _, err := client.Send(context.Background(), Message{To: "x"}); err == nil {
		t.Fatal("expected error for 4xx response")
	}
	if calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1 (no retry on 4xx)", calls.Load())
	}
}
