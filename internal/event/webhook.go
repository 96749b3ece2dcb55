package event

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/checkhealth/goals/internal/config"
	"github.com/google/uuid"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

type WebhookConfig struct {
	URL     string
	Secret  string // Raw signing secret; empty disables signatures
	Timeout time.Duration
}

// WebhookTransport POSTs each payload to a single endpoint, signed with
// Standard Webhooks headers. The channel travels in the webhook-event header.
type WebhookTransport struct {
	url    string
	signer *standardwebhooks.Webhook
	client *http.Client
}

func NewWebhookTransport(cfg WebhookConfig) (*WebhookTransport, error) {
	var signer *standardwebhooks.Webhook
	if cfg.Secret != "" {
		wh, err := standardwebhooks.NewWebhookRaw([]byte(cfg.Secret))
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook signer: %w", err)
		}
		signer = wh
	}

	return &WebhookTransport{
		url:    cfg.URL,
		signer: signer,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (t *WebhookTransport) Send(ctx context.Context, channel, payload string) error {
	msgID := "msg_" + uuid.New().String()
	now := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("webhook-event", channel)

	if t.signer != nil {
		signature, err := t.signer.Sign(msgID, now, []byte(payload))
		if err != nil {
			return fmt.Errorf("failed to sign webhook: %w", err)
		}
		req.Header.Set("webhook-signature", signature)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}

	return nil
}

func (t *WebhookTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

func (t *WebhookTransport) Name() string { return config.TransportWebhook }
