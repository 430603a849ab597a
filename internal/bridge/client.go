package bridge

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fennwald/huecore/internal/infrastructure/config"
)

// Request constants.
const (
	// appKeyHeader carries the application key on every authenticated call.
	appKeyHeader = "hue-application-key"

	// tlsMinVersion is the minimum TLS version accepted from the bridge.
	tlsMinVersion = tls.VersionTLS12

	// maxErrorBody bounds how much of an error response body is read when
	// building an error message.
	maxErrorBody = 4096
)

// Logger is the logging interface used by the transport.
// A no-op logger is used when none is set.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// APIError is a single error entry from a CLIP v2 error envelope.
type APIError struct {
	Description string `json:"description"`
}

// Envelope is the standard CLIP v2 response wrapper.
// Every collection and single-resource response arrives as
// {"errors": [...], "data": [...]}; a lookup that matches nothing has an
// empty data list rather than a missing one.
type Envelope struct {
	Errors []APIError        `json:"errors,omitempty"`
	Data   []json.RawMessage `json:"data"`
}

// Client executes authenticated HTTPS calls against a single bridge.
//
// The bridge presents a self-signed certificate, so certificate chain
// validation is disabled unless verify_ssl is turned on in config
// (host-pinned trust, not public-CA trust).
//
// Thread Safety: safe for concurrent use once constructed; SetLogger must
// be called before the client is shared.
type Client struct {
	http    *http.Client
	baseURL string
	appKey  string
	retry   config.RetryConfig
	logger  Logger
}

// New creates a transport client from configuration.
// It fails fast when the bridge address or application key is missing,
// since no operation can succeed without them.
func New(cfg *config.Config) (*Client, error) {
	if cfg.Bridge.IP == "" {
		return nil, fmt.Errorf("bridge address not configured")
	}
	if cfg.Bridge.ApplicationKey == "" {
		return nil, ErrNoCredential
	}

	scheme := "https"
	if !cfg.API.UseHTTPS {
		scheme = "http"
	}

	return &Client{
		http:    newHTTPClient(cfg.GetRequestTimeout(), cfg.GetConnectionTimeout(), cfg.API.VerifySSL),
		baseURL: fmt.Sprintf("%s://%s%s", scheme, cfg.Bridge.IP, cfg.API.BasePath),
		appKey:  cfg.Bridge.ApplicationKey,
		retry:   cfg.Retry,
		logger:  noopLogger{},
	}, nil
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// newHTTPClient builds an *http.Client with separate connection-establish
// and overall request timeouts.
func newHTTPClient(requestTimeout, connectTimeout time.Duration, verifySSL bool) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tlsMinVersion,
			InsecureSkipVerify: !verifySSL, //nolint:gosec // bridge certs are self-signed
		},
		TLSHandshakeTimeout: connectTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}
}

// Get executes a GET against a CLIP v2 endpoint (e.g. "/resource/light").
//
// GETs are idempotent, so transport-level failures are retried with
// exponential backoff up to the configured attempt count. Bridge-level
// failures (unauthorized, not found) are not retried.
func (c *Client) Get(ctx context.Context, endpoint string) (*Envelope, error) {
	var env *Envelope

	operation := func() error {
		result, err := c.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			// Only network failures are worth retrying; everything else is
			// a definitive answer from the bridge.
			if isRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		env = result
		return nil
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		return nil, err
	}
	return env, nil
}

// Put executes a PUT with a partial JSON document against a CLIP v2
// endpoint.
//
// PUTs mutate bridge state and are never retried: an ambiguous failure
// must surface to the caller rather than risk a duplicate side effect.
func (c *Client) Put(ctx context.Context, endpoint string, payload any) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return c.do(ctx, http.MethodPut, endpoint, body)
}

// newBackOff builds the retry policy for read operations.
func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retry.GetInitialDelay()
	bo.MaxInterval = c.retry.GetMaxDelay()

	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	// MaxAttempts counts total tries; backoff counts retries after the first.
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx)
}

// isRetryable reports whether an error represents a transient network
// failure rather than a definitive bridge response.
func isRetryable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// do executes a single HTTP request and classifies the outcome.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*Envelope, error) {
	url := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(appKeyHeader, c.appKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("bridge request", "method", method, "endpoint", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		// Context cancellation is the caller's decision, not a bridge fault.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s %s", ErrUnauthorized, method, endpoint)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("bridge returned %d for %s %s: %s",
			resp.StatusCode, method, endpoint, readErrorBody(resp.Body))
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response for %s %s: %w", method, endpoint, err)
	}

	// The bridge can return 200 with an error envelope (e.g. invalid field
	// values on a PUT). Surface the first description.
	if len(env.Errors) > 0 {
		return &env, fmt.Errorf("bridge error for %s %s: %s", method, endpoint, env.Errors[0].Description)
	}

	return &env, nil
}

// readErrorBody extracts a short description from an error response body.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return "no response body"
	}

	var env Envelope
	if json.Unmarshal(data, &env) == nil && len(env.Errors) > 0 {
		return env.Errors[0].Description
	}
	return strings.TrimSpace(string(data))
}
