// Package webhook posts rendered messages to the configured webhook URLs.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"mtadmin/internal/domain/delivery"
)

const (
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = 2 * time.Second
	DefaultAttemptTimeout = 10 * time.Second

	userAgent = "MTAdmin/1.0"
)

// Options tune the retry loop. Zero values fall back to the defaults.
type Options struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.AttemptTimeout <= 0 {
		o.AttemptTimeout = DefaultAttemptTimeout
	}
	return o
}

type payload struct {
	Content string `json:"content"`
}

var _ delivery.Deliverer = (*Client)(nil)

// Client delivers messages with a bounded number of attempts.
type Client struct {
	http    *http.Client
	opts    Options
	journal delivery.Journal
	log     *slog.Logger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewClient creates a delivery client. journal may be nil.
func NewClient(opts Options, journal delivery.Journal, log *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		opts:    opts.withDefaults(),
		journal: journal,
		log:     log.With("component", "webhook_client"),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Deliver posts req.Message to req.URL and reports whether an attempt was
// answered with 204 No Content. An empty URL makes no network call.
// Cancelling ctx stops the remaining attempts.
func (c *Client) Deliver(ctx context.Context, req delivery.Request) bool {
	log := c.log.With("record_id", req.RecordID, "record_type", req.RecordType)

	if req.URL == "" {
		log.Info("webhook not configured, skipping delivery")
		return false
	}

	body, err := json.Marshal(payload{Content: req.Message})
	if err != nil {
		log.Error("encode webhook payload", "error", err)
		return false
	}

	for n := 1; n <= c.opts.MaxAttempts; n++ {
		if n > 1 {
			if err := c.sleep(ctx, c.opts.BaseDelay); err != nil {
				log.Warn("delivery cancelled", "attempt", n, "error", err)
				return false
			}
		}

		attempt := delivery.NewAttempt(req.RecordID, req.RecordType, n, c.now())
		status, err := c.post(ctx, req.URL, body)
		attempt.FinishedAt = c.now()
		attempt.StatusCode = status
		attempt.Delivered = err == nil && status == http.StatusNoContent
		if err != nil {
			attempt.Error = err.Error()
		} else if !attempt.Delivered {
			attempt.Error = fmt.Sprintf("unexpected status %d", status)
		}
		c.journalAttempt(ctx, log, attempt)

		if attempt.Delivered {
			log.Info("webhook delivered", "attempt", n, "duration", attempt.Duration())
			return true
		}
		log.Warn("webhook attempt failed",
			"attempt", n,
			"max_attempts", c.opts.MaxAttempts,
			"status", status,
			"error", attempt.Error,
		)
		if ctx.Err() != nil {
			return false
		}
	}

	log.Error("webhook delivery failed", "attempts", c.opts.MaxAttempts)
	return false
}

func (c *Client) post(ctx context.Context, url string, body []byte) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}

func (c *Client) journalAttempt(ctx context.Context, log *slog.Logger, a *delivery.Attempt) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Record(context.WithoutCancel(ctx), a); err != nil {
		log.Warn("journal delivery attempt", "attempt", a.Attempt, "error", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
