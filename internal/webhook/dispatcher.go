// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/campuscms/campuscms/internal/store"
)

// Dispatcher fans mutation events out to subscribed webhooks through a
// worker pool. Dispatch never blocks the caller: a full queue drops the
// delivery with a log line.
type Dispatcher struct {
	queries *store.Queries
	logger  *slog.Logger
	queue   chan *queuedDelivery
	workers int
	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
}

// queuedDelivery is one delivery handed to a worker.
type queuedDelivery struct {
	DeliveryID int64
	WebhookID  int64
	Event      string
	Payload    []byte
	URL        string
	Secret     string
}

// Config holds dispatcher configuration.
type Config struct {
	Workers   int // Number of concurrent delivery workers
	QueueSize int // Buffered queue capacity
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers:   3,
		QueueSize: 100,
	}
}

// NewDispatcher creates a new webhook dispatcher.
func NewDispatcher(queries *store.Queries, logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		queries: queries,
		logger:  logger,
		queue:   make(chan *queuedDelivery, cfg.QueueSize),
		workers: cfg.Workers,
		done:    make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting webhook dispatcher", "workers", d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop stops the dispatcher and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
	d.logger.Info("webhook dispatcher stopped")
}

// worker processes queued deliveries until stopped.
func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("webhook worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case delivery := <-d.queue:
			d.processDelivery(ctx, delivery)
		}
	}
}

// Dispatch records a delivery per subscribed webhook and queues each for
// asynchronous processing. Errors are logged, never returned to the
// mutation path.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	if !running {
		d.logger.Warn("dispatcher not running, event dropped", "event_type", event.Type)
		return
	}

	webhooks, err := d.queries.ListWebhooksForEvent(ctx, event.Type)
	if err != nil {
		d.logger.Error("failed to list webhooks for event", "error", err, "event_type", event.Type)
		return
	}
	if len(webhooks) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("failed to marshal event payload", "error", err, "event_type", event.Type)
		return
	}

	for _, wh := range webhooks {
		// The SQL match uses LIKE; re-check against the parsed list.
		if !wh.HasEvent(event.Type) {
			continue
		}

		delivery, err := d.queries.CreateWebhookDelivery(ctx, wh.ID, event.Type, string(payload))
		if err != nil {
			d.logger.Error("failed to create delivery record",
				"error", err, "webhook_id", wh.ID, "event_type", event.Type)
			continue
		}

		qd := &queuedDelivery{
			DeliveryID: delivery.ID,
			WebhookID:  wh.ID,
			Event:      event.Type,
			Payload:    payload,
			URL:        wh.URL,
			Secret:     wh.Secret,
		}

		select {
		case d.queue <- qd:
		default:
			d.logger.Warn("delivery queue full, delivery dropped", "delivery_id", delivery.ID)
			d.markFailed(ctx, delivery.ID, 0, "delivery queue full")
		}
	}
}

// DispatchEvent dispatches an event with the given type and data.
func (d *Dispatcher) DispatchEvent(ctx context.Context, eventType string, data any) {
	d.Dispatch(ctx, NewEvent(eventType, data))
}

func (d *Dispatcher) markFailed(ctx context.Context, deliveryID int64, statusCode int, msg string) {
	if err := d.queries.MarkDeliveryFailed(ctx, deliveryID, statusCode, msg); err != nil {
		d.logger.Error("failed to record delivery failure", "error", err, "delivery_id", deliveryID)
	}
}
