package miro

import (
	"context"
	"fmt"
	"net/url"
)

// WebhookCreate is the payload for creating a board event subscription.
type WebhookCreate struct {
	BoardID     string `json:"boardId"`
	CallbackURL string `json:"callbackUrl"`
	Status      string `json:"status,omitempty"` // "enabled" or "disabled"
}

// Validate checks the payload against the webhook endpoint contract.
func (w WebhookCreate) Validate() error {
	if w.BoardID == "" {
		return fmt.Errorf("webhook board id cannot be empty")
	}
	if w.CallbackURL == "" {
		return fmt.Errorf("webhook callback URL cannot be empty")
	}
	u, err := url.Parse(w.CallbackURL)
	if err != nil || u.Scheme != "https" {
		return fmt.Errorf("webhook callback URL must be a valid https URL")
	}
	return nil
}

// WebhookUpdate is the payload for updating a subscription.
type WebhookUpdate struct {
	CallbackURL string `json:"callbackUrl,omitempty"`
	Status      string `json:"status,omitempty"`
}

// CreateWebhook subscribes a callback URL to board events.
func (c *Client) CreateWebhook(ctx context.Context, create WebhookCreate) (*Webhook, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	var webhook Webhook
	if err := c.post(ctx, "/webhooks/board_subscriptions", nil, create, &webhook); err != nil {
		return nil, fmt.Errorf("failed to create webhook for board %s: %w", create.BoardID, err)
	}
	return &webhook, nil
}

// GetWebhook retrieves a subscription by id.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	var webhook Webhook
	if err := c.get(ctx, "/webhooks/board_subscriptions/"+url.PathEscape(webhookID), nil, &webhook); err != nil {
		return nil, fmt.Errorf("failed to get webhook %s: %w", webhookID, err)
	}
	return &webhook, nil
}

// ListWebhooks returns a page of subscriptions.
func (c *Client) ListWebhooks(ctx context.Context, cursor string, limit int) (*WebhookList, error) {
	var list WebhookList
	if err := c.get(ctx, "/webhooks/board_subscriptions", listQuery(cursor, limit), &list); err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	return &list, nil
}

// UpdateWebhook updates a subscription's callback URL or status.
func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, update WebhookUpdate) (*Webhook, error) {
	var webhook Webhook
	if err := c.patch(ctx, "/webhooks/board_subscriptions/"+url.PathEscape(webhookID), update, &webhook); err != nil {
		return nil, fmt.Errorf("failed to update webhook %s: %w", webhookID, err)
	}
	return &webhook, nil
}

// DeleteWebhook deletes a subscription.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	if err := c.delete(ctx, "/webhooks/board_subscriptions/"+url.PathEscape(webhookID), nil); err != nil {
		return fmt.Errorf("failed to delete webhook %s: %w", webhookID, err)
	}
	return nil
}
