package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

const (
	WebhookPath           = "/webhooks/rest/webhook"
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 10 * time.Second
)

// Client posts one user utterance to the assistant's REST webhook and
// returns the reply batch.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.AssistantAPI = Client{}

type webhookMetadata struct {
	Token string `json:"token"`
}

type webhookRequest struct {
	Sender   string          `json:"sender"`
	Message  string          `json:"message"`
	Metadata webhookMetadata `json:"metadata"`
}

func (c Client) Send(ctx context.Context, req domain.AssistantRequest) ([]domain.ReplyUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endpoint, err := webhookURL(c.BaseURL)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(webhookRequest{
		Sender:   req.Sender,
		Message:  req.Message,
		Metadata: webhookMetadata{Token: req.Credential},
	})
	if err != nil {
		return nil, fmt.Errorf("encode assistant request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create assistant request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.Credential != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Credential)
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send assistant message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read assistant response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("send assistant message: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var units []domain.ReplyUnit
	if err := json.Unmarshal(trimmed, &units); err != nil {
		return nil, fmt.Errorf("decode assistant response: %w", err)
	}
	return units, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func webhookURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", errors.New("assistant base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse assistant base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("assistant base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("assistant base url host is required")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + WebhookPath
	return parsed.String(), nil
}
