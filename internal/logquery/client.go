package logquery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/watchfire-io/tasklog/internal/buildinfo"
	"github.com/watchfire-io/tasklog/internal/models"
)

// Source fetches log entries for a query.
type Source interface {
	Fetch(ctx context.Context, q models.QueryState) ([]models.LogEntry, error)
}

// ClientOptions configure a Client.
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
}

// ClientOptionsFromSettings maps settings.yaml onto client options.
func ClientOptionsFromSettings(s *models.Settings) ClientOptions {
	return ClientOptions{
		BaseURL:   s.Server.BaseURL,
		Timeout:   time.Duration(s.Server.TimeoutSeconds) * time.Second,
		RateLimit: s.Server.RateLimit,
	}
}

// MaxRedirects bounds how many 3xx hops a request follows.
const MaxRedirects = 5

// Client is the HTTP Source talking to GET <base>/logs.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewClient creates a client for the given base URL.
func NewClient(opts ClientOptions, logger *log.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("invalid server URL %q: expected http:// or https://", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: base,
		timeout: opts.Timeout,
		logger:  logger,
		http: &fasthttp.Client{
			Name:                "tasklog/" + buildinfo.Version,
			MaxConnsPerHost:     4,
			MaxIdleConnDuration: 30 * time.Second,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
		},
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c, nil
}

// URL returns the full request URL for q.
func (c *Client) URL(q models.QueryState) string {
	return c.baseURL + LogsPath + "?" + EncodeQuery(q)
}

type fetchResult struct {
	status int
	body   []byte
	err    error
}

// Fetch issues the GET request, following up to MaxRedirects redirects, and
// decodes the response. It returns as soon as ctx is done or the client
// timeout expires; an abandoned request finishes in the background and its
// result is dropped.
func (c *Client) Fetch(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRequest, err)
		}
	}

	// One deadline covers the whole redirect chain.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.URL(q)
	requestID := uuid.NewString()
	started := time.Now()

	c.logger.Debug("msg", "Sending logs request",
		"component", "logs_client",
		"request_id", requestID,
		"url", url)

	done := make(chan fetchResult, 1)
	go func() {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(url)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		req.SetTimeout(c.timeout)
		err := c.http.DoRedirects(req, resp, MaxRedirects)

		// Copy before the response goes back to the pool
		var body []byte
		if err == nil {
			body = append([]byte(nil), resp.Body()...)
		}
		done <- fetchResult{status: resp.StatusCode(), body: body, err: err}
	}()

	var res fetchResult
	select {
	case <-ctx.Done():
		c.logger.Debug("msg", "Logs request abandoned",
			"component", "logs_client",
			"request_id", requestID,
			"reason", ctx.Err())
		return nil, fmt.Errorf("%w: %w", ErrRequest, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		c.logger.Warn("msg", "Logs request failed",
			"component", "logs_client",
			"request_id", requestID,
			"error", res.err)
		return nil, fmt.Errorf("%w: %w", ErrRequest, res.err)
	}

	if res.status < 200 || res.status >= 300 {
		c.logger.Warn("msg", "Logs request returned error status",
			"component", "logs_client",
			"request_id", requestID,
			"status_code", res.status)
		return nil, fmt.Errorf("%w: %d", ErrStatus, res.status)
	}

	entries, err := DecodeEntries(res.body)
	if err != nil {
		c.logger.Warn("msg", "Malformed logs response",
			"component", "logs_client",
			"request_id", requestID,
			"error", err,
			"body_bytes", len(res.body))
		return nil, err
	}

	c.logger.Debug("msg", "Logs request completed",
		"component", "logs_client",
		"request_id", requestID,
		"entries", len(entries),
		"duration_ms", time.Since(started).Milliseconds())
	return entries, nil
}

// DecodeEntries parses a bare JSON array of log entries. Anything else
// (object envelope, null, scalar, trailing garbage) is ErrDecode.
func DecodeEntries(body []byte) ([]models.LogEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected JSON array", ErrDecode)
	}

	var entries []models.LogEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	return entries, nil
}
