package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// maxErrorBody caps how much of a failed response body is kept in a NetworkError.
const maxErrorBody = 512

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     TokenSource
	logger     logging.Logger
	metrics    *metrics
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests swap the transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// underlying *http.Client once all options have run, so it combines with
// WithHTTPClient in either order and never changes a shared client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithRegisterer registers the request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *HTTPClient) { c.metrics = newMetrics(reg) }
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (e.g. "https://validation-v2.brainsimulation.eu"). A trailing slash is ignored.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     StaticToken(""),
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	if c.metrics == nil {
		c.metrics = newMetrics(nil)
	}
	return c
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return c.canceled(method, path, err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	c.metrics.duration.WithLabelValues(method).Observe(elapsed.Seconds())

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return c.canceled(method, path, ctxErr)
		}
		c.metrics.requests.WithLabelValues(method, "0").Inc()
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "duration", elapsed, "err", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.requests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug(ctx, "request finished", "method", method, "path", path, "status", resp.StatusCode, "duration", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &NetworkError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return c.canceled(method, path, ctxErr)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// canceled classifies a context error; an expired deadline is a failure, not a cancellation.
func (c *HTTPClient) canceled(method, path string, cause error) error {
	if errors.Is(cause, context.DeadlineExceeded) {
		c.metrics.requests.WithLabelValues(method, "0").Inc()
		return &NetworkError{Method: method, Path: path, Err: cause}
	}
	c.metrics.requests.WithLabelValues(method, "canceled").Inc()
	return fmt.Errorf("%s %s: %w", method, path, ErrCanceled)
}
