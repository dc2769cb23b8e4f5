package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/goverify/internal/notification/entity"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/atomic"
)

// Gateway delivers text messages through an HTTP SMS provider. Requests are
// retried with exponential backoff on transient failures; 4xx responses are
// treated as permanent.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	senderID   string
	ins        instrument.Instrumentation

	maxRetries  uint64
	baseBackoff time.Duration

	sent   atomic.Int64
	failed atomic.Int64
}

// Config configures the SMS gateway client.
type Config struct {
	// BaseURL is the provider endpoint, without a trailing slash.
	BaseURL string
	// APIKey authenticates requests to the provider.
	APIKey string
	// SenderID is the originating sender name or number.
	SenderID string
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration
	// MaxRetries caps retry attempts after the first try.
	MaxRetries uint64
	// BaseBackoff is the initial retry delay.
	BaseBackoff time.Duration
}

type sendRequest struct {
	To     string `json:"to"`
	From   string `json:"from"`
	Body   string `json:"body"`
	APIKey string `json:"api_key"`
}

func New(cfg Config, ins instrument.Instrumentation) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	backoff := cfg.BaseBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	return &Gateway{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		senderID:    cfg.SenderID,
		ins:         ins,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: backoff,
	}
}

// Stats reports how many messages were delivered and dropped since start.
func (g *Gateway) Stats() (sent, failed int64) {
	return g.sent.Load(), g.failed.Load()
}

func (g *Gateway) Send(ctx context.Context, msg entity.SMSMessage) error {
	ctx, span := g.ins.Tracer("notification.outbound.sms").Start(ctx, "Send")
	defer span.End()

	payload, err := json.Marshal(sendRequest{
		To:     msg.To,
		From:   g.senderID,
		Body:   msg.Body,
		APIKey: g.apiKey,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	backoff := retry.WithMaxRetries(g.maxRetries, retry.NewExponential(g.baseBackoff))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return g.attempt(ctx, payload)
	})
	if err != nil {
		g.failed.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	g.sent.Inc()
	return nil
}

func (g *Gateway) attempt(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return retry.RetryableError(fmt.Errorf("sms gateway responded %d", resp.StatusCode))
	default:
		return fmt.Errorf("sms gateway responded %d", resp.StatusCode)
	}
}
