package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/blogcraft/internal/config"
	"github.com/phrazzld/blogcraft/internal/redact"
)

const (
	// maxResponseBytes caps how much of a success body is read.
	maxResponseBytes = 4 << 20
	// maxErrorBodyBytes caps how much of an error body is kept for diagnostics.
	maxErrorBodyBytes = 1 << 10

	defaultTimeout = 60 * time.Second
)

// Generator produces blog content for a topic. *Client is the production
// implementation; the HTTP bridge depends only on this interface.
type Generator interface {
	Generate(ctx context.Context, topic string) (Result, error)
}

var _ Generator = (*Client)(nil)

// Client calls the remote generation endpoint. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	endpoint   string
	configured bool
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client, whose timeout comes from
// the ClientConfig.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Client for cfg.Endpoint.
//
// An empty or unusable endpoint is not an error here: every Generate call on
// such a client fails with KindConfiguration before any network I/O.
func NewClient(cfg config.ClientConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	c := &Client{
		endpoint:   endpoint,
		configured: isUsableEndpoint(endpoint),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !c.configured {
		logger.Warn("generation endpoint not configured, all calls will fail",
			"endpoint", redact.URL(endpoint))
	}

	return c, nil
}

// Generate sends topic to the remote service and returns the normalized
// result. It performs at most one HTTP request and never retries. Errors are
// always *Error; cancelling ctx aborts the request with KindCancelled.
func (c *Client) Generate(ctx context.Context, topic string) (Result, error) {
	log := c.logger.With("call_id", uuid.NewString())

	req, err := NewRequest(topic)
	if err != nil {
		return c.fail(ctx, log, err)
	}

	if !c.configured {
		return c.fail(ctx, log, newError(KindConfiguration,
			fmt.Sprintf("endpoint %q is not an absolute http(s) URL", redact.URL(c.endpoint)), nil))
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return c.fail(ctx, log, newError(KindInvalidInput, "failed to encode request", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return c.fail(ctx, log, newError(KindConfiguration, "failed to build request", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.DebugContext(ctx, "sending generation request",
		"endpoint", redact.URL(c.endpoint),
		"topic_length", len(req.Topic))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.fail(ctx, log, transportError(ctx, err))
	}
	defer resp.Body.Close()

	log.DebugContext(ctx, "received generation response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return c.fail(ctx, log, statusError(resp.StatusCode, strings.TrimSpace(string(text))))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return c.fail(ctx, log, transportError(ctx, err))
	}
	if len(raw) > maxResponseBytes {
		return c.fail(ctx, log, newError(KindMalformedResponse,
			fmt.Sprintf("response body exceeds %d bytes", maxResponseBytes), nil))
	}

	result, detected, err := normalize(raw)
	if err != nil {
		log = log.With("envelope", detected.String())
		return c.fail(ctx, log, err)
	}

	log.InfoContext(ctx, "blog generated",
		"envelope", detected.String(),
		"content_length", len(result.Content))

	return result, nil
}

// fail logs a classified failure and returns it.
func (c *Client) fail(ctx context.Context, log *slog.Logger, err error) (Result, error) {
	var genErr *Error
	if !errors.As(err, &genErr) {
		genErr = newError(KindUnknown, "", err)
	}

	level := slog.LevelWarn
	if genErr.Kind == KindInvalidInput || genErr.Kind == KindCancelled {
		level = slog.LevelDebug
	}
	log.Log(ctx, level, "generation failed",
		"kind", genErr.Kind.String(),
		"status", genErr.Status,
		"error", redact.Error(genErr))

	return Result{}, genErr
}

// transportError classifies a failure to obtain or read a response. Only the
// caller's context ending counts as cancellation; the client's own timeout is
// a network failure.
func transportError(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return newError(KindCancelled, "", ctxErr)
	}
	return newError(KindNetwork, "", err)
}

// isUsableEndpoint rejects empty values and placeholders such as
// "Add your api here" that are not absolute http(s) URLs.
func isUsableEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}
