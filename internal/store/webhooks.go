// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const webhookColumns = `id, name, url, secret, events, is_active, created_by, created_at, updated_at`

func scanWebhook(row interface{ Scan(...any) error }) (model.Webhook, error) {
	var (
		w        model.Webhook
		isActive int
	)
	if err := row.Scan(&w.ID, &w.Name, &w.URL, &w.Secret, &w.Events,
		&isActive, &w.CreatedBy, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return model.Webhook{}, mapRowErr(err)
	}
	w.IsActive = isActive != 0
	return w, nil
}

// CreateWebhookParams carries the writable fields of a webhook.
type CreateWebhookParams struct {
	Name      string
	URL       string
	Secret    string
	Events    []string
	CreatedBy string
}

// CreateWebhook inserts a new webhook subscription.
func (q *Queries) CreateWebhook(ctx context.Context, p CreateWebhookParams) (model.Webhook, error) {
	var w model.Webhook
	w.SetEvents(p.Events)

	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO webhooks (name, url, secret, events, is_active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?, ?)`,
		p.Name, p.URL, p.Secret, w.Events, p.CreatedBy, now, now)
	if err != nil {
		return model.Webhook{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Webhook{}, err
	}
	row := q.db.QueryRowContext(ctx, `SELECT `+webhookColumns+` FROM webhooks WHERE id = ?`, id)
	return scanWebhook(row)
}

// ListWebhooksForEvent returns active webhooks whose event list mentions
// event. The LIKE match is re-checked against the parsed list by callers.
func (q *Queries) ListWebhooksForEvent(ctx context.Context, event string) ([]model.Webhook, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+webhookColumns+` FROM webhooks WHERE is_active = 1 AND events LIKE ?`,
		"%"+event+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hooks []model.Webhook
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, w)
	}
	return hooks, rows.Err()
}

// DeleteWebhook removes a webhook and its delivery history.
func (q *Queries) DeleteWebhook(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM webhooks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateWebhookDelivery records a pending delivery.
func (q *Queries) CreateWebhookDelivery(ctx context.Context, webhookID int64, event, payload string) (model.WebhookDelivery, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO webhook_deliveries (webhook_id, event, payload, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		webhookID, event, payload, model.DeliveryStatusPending, now, now)
	if err != nil {
		return model.WebhookDelivery{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.WebhookDelivery{}, err
	}
	return q.GetWebhookDelivery(ctx, id)
}

// GetWebhookDelivery loads one delivery record.
func (q *Queries) GetWebhookDelivery(ctx context.Context, id int64) (model.WebhookDelivery, error) {
	var d model.WebhookDelivery
	row := q.db.QueryRowContext(ctx, `
		SELECT id, webhook_id, event, payload, response_code, delivered_at, status, error_message, created_at, updated_at
		FROM webhook_deliveries WHERE id = ?`, id)
	if err := row.Scan(&d.ID, &d.WebhookID, &d.Event, &d.Payload, &d.ResponseCode,
		&d.DeliveredAt, &d.Status, &d.ErrorMessage, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return model.WebhookDelivery{}, mapRowErr(err)
	}
	return d, nil
}

// MarkDeliveryDelivered records a successful delivery.
func (q *Queries) MarkDeliveryDelivered(ctx context.Context, id int64, statusCode int) error {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		UPDATE webhook_deliveries
		SET status = ?, response_code = ?, delivered_at = ?, updated_at = ?
		WHERE id = ?`,
		model.DeliveryStatusDelivered, sql.NullInt64{Int64: int64(statusCode), Valid: true}, now, now, id)
	return err
}

// MarkDeliveryFailed records a failed delivery. Deliveries are
// single-attempt; a failed record is terminal.
func (q *Queries) MarkDeliveryFailed(ctx context.Context, id int64, statusCode int, errMsg string) error {
	var code sql.NullInt64
	if statusCode > 0 {
		code = sql.NullInt64{Int64: int64(statusCode), Valid: true}
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE webhook_deliveries
		SET status = ?, response_code = ?, error_message = ?, updated_at = ?
		WHERE id = ?`,
		model.DeliveryStatusFailed, code, errMsg, time.Now().UTC(), id)
	return err
}
