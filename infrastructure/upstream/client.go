package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fazlanhoxton/hxt-events/infrastructure/metrics"
)

const maxResponseBytes = 10 << 20

var ErrMissingCredential = errors.New("missing API credential")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Service, e.Status, e.Body)
}

type Options struct {
	Service    string
	Token      string
	Scheme     string
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
}

// Client is the single request path shared by every upstream integration:
// auth header, per-call timeout, JSON encode/decode and status mapping.
type Client struct {
	service    string
	token      string
	scheme     string
	timeout    time.Duration
	headers    map[string]string
	httpClient *http.Client
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	scheme := opts.Scheme
	if scheme == "" {
		scheme = "Bearer"
	}

	return &Client{
		service:    opts.Service,
		token:      opts.Token,
		scheme:     scheme,
		timeout:    opts.Timeout,
		headers:    opts.Headers,
		httpClient: httpClient,
	}
}

func (c *Client) Service() string {
	return c.service
}

// Ready reports whether the client holds a credential.
func (c *Client) Ready() error {
	if c.token == "" {
		return fmt.Errorf("%w: %s token is not configured", ErrMissingCredential, c.service)
	}
	return nil
}

type Request struct {
	Method string
	URL    string
	Body   any
}

// Do sends req and decodes a 2xx JSON body into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if err := c.Ready(); err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", c.service, err)
		}
		body = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.service, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.scheme+" "+c.token)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.UpstreamRequestDuration.WithLabelValues(c.service).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, "transport_error").Inc()
		slog.Error("Upstream request failed", "service", c.service, "method", req.Method, "url", req.URL, "error", err)
		return fmt.Errorf("%s request failed: %w", c.service, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, "transport_error").Inc()
		return fmt.Errorf("failed to read %s response: %w", c.service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, strconv.Itoa(resp.StatusCode)).Inc()
		slog.Warn("Upstream returned non-success status",
			"service", c.service,
			"method", req.Method,
			"url", req.URL,
			"status", resp.StatusCode,
		)
		return &StatusError{
			Service: c.service,
			Status:  resp.StatusCode,
			Body:    strings.TrimSpace(string(payload)),
		}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(c.service, "ok").Inc()

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.service, err)
	}
	return nil
}

// Call is Do with the payload type spelled out by the caller.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	if err := c.Do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
