// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campuscms/campuscms/internal/version"
)

// Delivery configuration constants
const (
	RequestTimeout = 30 * time.Second // HTTP request timeout
	MaxResponseLen = 10 * 1024        // Maximum response body to read
)

// httpClient is the shared HTTP client with appropriate timeouts.
var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// processDelivery attempts a single HTTP delivery and records the outcome.
// There is no retry path: a non-2xx response or transport error marks the
// delivery failed for good.
func (d *Dispatcher) processDelivery(ctx context.Context, delivery *queuedDelivery) {
	statusCode, err := d.attemptDelivery(ctx, delivery)

	if err != nil {
		d.logger.Warn("webhook delivery failed",
			"delivery_id", delivery.DeliveryID,
			"webhook_id", delivery.WebhookID,
			"event", delivery.Event,
			"status_code", statusCode,
			"error", err)
		d.markFailed(ctx, delivery.DeliveryID, statusCode, err.Error())
		return
	}

	if err := d.queries.MarkDeliveryDelivered(ctx, delivery.DeliveryID, statusCode); err != nil {
		d.logger.Error("failed to record delivery success",
			"error", err, "delivery_id", delivery.DeliveryID)
		return
	}

	d.logger.Info("webhook delivered",
		"delivery_id", delivery.DeliveryID,
		"webhook_id", delivery.WebhookID,
		"event", delivery.Event,
		"status_code", statusCode)
}

// attemptDelivery performs the HTTP POST. Returns the response status code
// (0 when no response was received) and a non-nil error on failure.
func (d *Dispatcher) attemptDelivery(ctx context.Context, delivery *queuedDelivery) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.URL, bytes.NewReader(delivery.Payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Webhook-Signature", GenerateSignature(delivery.Payload, delivery.Secret))
	req.Header.Set("X-Webhook-Event", delivery.Event)
	req.Header.Set("X-Webhook-Delivery-ID", fmt.Sprintf("%d", delivery.DeliveryID))

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp.StatusCode, nil
}
