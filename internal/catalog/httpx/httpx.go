// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package httpx is the JSON-over-HTTP transport shared by the catalog clients.

Every call waits on a per-provider token bucket, then retries throttling (429),
server errors (5xx) and transport failures with exponential backoff. A 404
becomes [catalog.ErrNotFound] and any other 4xx fails immediately.
*/
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/platform/metrics"
)

const (
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 512
)

// Options tunes a [Client]. Zero values fall back to sane defaults.
type Options struct {
	RPS        float64
	Burst      int
	MaxRetries uint64
	Timeout    time.Duration
	// InitialInterval overrides the first backoff delay. Tests set it low.
	InitialInterval time.Duration
	HTTPClient      *http.Client
}

// Client performs rate-limited, retried requests against one provider.
type Client struct {
	provider   string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
	initial    time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: upstream returned %d: %s", e.Provider, e.Status, e.Body)
}

// New builds a client for provider.
func New(provider string, opts Options, recorder *metrics.Metrics, logger *slog.Logger) *Client {
	if opts.RPS <= 0 {
		opts.RPS = 4
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		provider:   provider,
		http:       opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		maxRetries: opts.MaxRetries,
		initial:    opts.InitialInterval,
		metrics:    recorder,
		logger:     logger.With(slog.String("provider", provider)),
	}
}

// RequestFunc builds a fresh request for each attempt, since a body can only be read once.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// DoJSON sends the request and decodes a 2xx body into out.
func (c *Client) DoJSON(ctx context.Context, build RequestFunc, out any) error {
	attempt := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		request, err := build(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		request.Header.Set("Accept", "application/json")

		response, err := c.http.Do(request)
		if err != nil {
			c.metrics.CatalogRequest(c.provider, 0)
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("%s: transport: %w", c.provider, err)
		}
		defer response.Body.Close()

		c.metrics.CatalogRequest(c.provider, response.StatusCode)
		return c.handle(response, out)
	}

	notify := func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "catalog_request_retry",
			slog.String("error", err.Error()),
			slog.Duration("wait", wait),
		)
	}

	return backoff.RetryNotify(attempt, c.policy(ctx), notify)
}

func (c *Client) handle(response *http.Response, out any) error {
	switch status := response.StatusCode; {
	case status == http.StatusNotFound:
		return backoff.Permanent(catalog.ErrNotFound)

	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return c.statusError(response)

	case status < 200 || status >= 300:
		return backoff.Permanent(c.statusError(response))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("%s: decode response: %w", c.provider, err))
	}
	return nil
}

func (c *Client) statusError(response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
	return &StatusError{Provider: c.provider, Status: response.StatusCode, Body: string(body)}
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	if c.initial > 0 {
		exponential.InitialInterval = c.initial
	}
	return backoff.WithContext(backoff.WithMaxRetries(exponential, c.maxRetries), ctx)
}

// IsStatus reports whether err is an upstream response with the given status.
func IsStatus(err error, status int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status == status
}
