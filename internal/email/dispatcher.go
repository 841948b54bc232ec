package email

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
)

// ErrQueueFull is returned when the outbound queue cannot accept more work.
var ErrQueueFull = errors.New("email queue is full")

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	Queued    int64 `json:"queued"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Pending   int   `json:"pending"`
}

// Dispatcher fans outbound messages across a fixed pool of workers so
// request handlers never block on provider latency.
type Dispatcher struct {
	client  *Client
	queue   chan Message
	workers int
	wg      sync.WaitGroup
	logger  logging.Logger

	// mu orders Enqueue sends against Shutdown closing the queue, so a
	// late Enqueue gets ErrQueueFull instead of a send on a closed channel.
	mu     sync.RWMutex
	closed bool

	queued    atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher creates a dispatcher with the configured pool and queue
// sizes. Start must be called before Enqueue.
func NewDispatcher(cfg *config.Config, client *Client) *Dispatcher {
	return &Dispatcher{
		client:  client,
		queue:   make(chan Message, cfg.Outreach.QueueSize),
		workers: cfg.Outreach.PoolSize,
		logger:  logging.GetGlobalLogger(),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
		d.logger.Info("Email dispatcher started", map[string]interface{}{
			"workers":    d.workers,
			"queue_size": cap(d.queue),
		})
	})
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		// Each message gets a fresh context so one slow send cannot
		// poison the rest of the queue.
		id, err := d.client.Send(context.Background(), msg)
		if err != nil {
			d.failed.Add(1)
			d.logger.Error("Email delivery failed", map[string]interface{}{
				"to":    msg.To,
				"error": err.Error(),
			})
			continue
		}
		d.delivered.Add(1)
		d.logger.Debug("Email delivered", map[string]interface{}{
			"to":         msg.To,
			"message_id": id,
		})
	}
}

// Enqueue submits a message without blocking. Returns ErrQueueFull when the
// buffer is saturated or the dispatcher has shut down; callers decide
// whether that is fatal.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueFull
	}
	select {
	case d.queue <- msg:
		d.queued.Add(1)
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting work and waits for in-flight sends to finish,
// bounded by ctx.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	var err error
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			d.logger.Info("Email dispatcher stopped", nil)
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

// Stats returns current delivery counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Queued:    d.queued.Load(),
		Delivered: d.delivered.Load(),
		Failed:    d.failed.Load(),
		Pending:   len(d.queue),
	}
}
