// Package notification delivers completion notices to the applicant-facing
// mail collaborator.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/usecase/interfaces"
)

type WebhookConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// WebhookNotifier POSTs the notice as JSON. It makes a single delivery
// attempt; the orchestrator treats notification as best-effort.
type WebhookNotifier struct {
	cfg    WebhookConfig
	client *http.Client
	log    *logger.Logger
}

var _ interfaces.INotifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(log *logger.Logger, cfg WebhookConfig) (*WebhookNotifier, error) {
	if log == nil {
		log = logger.NewNop()
	}
	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.URL == "" {
		return nil, fmt.Errorf("missing NOTIFY_WEBHOOK_URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With("component", "notification.webhook"),
	}, nil
}

func (n *WebhookNotifier) NotifyCompleted(ctx context.Context, notice entities.CompletionNotice) error {
	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", "aggregation.completed")
	if n.cfg.Secret != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.Secret)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	n.log.Info("completion notice delivered", "aggregation_request_id", notice.AggregationRequestID, "respondents", notice.RespondentCount)
	return nil
}
