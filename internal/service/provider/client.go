package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	xhttp "FinBoard/pkg/http"
	"FinBoard/pkg/metrics"
)

// Failure classification for upstream calls. Callers decide fallback policy;
// the client never retries.
var (
	// ErrNotFound marks an HTTP 404; callers may treat it as "feature
	// unavailable" rather than a hard error.
	ErrNotFound = errors.New("provider: not found")
	// ErrTimeout marks an exceeded per-call deadline.
	ErrTimeout = errors.New("provider: timeout")
	// ErrNetwork marks a transport-level failure.
	ErrNetwork = errors.New("provider: network error")
	// ErrNoAPIKey is returned before any upstream call when the shared
	// credential is missing.
	ErrNoAPIKey = errors.New("provider: api key not configured")
)

// StatusError is a non-200, non-404 provider response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider: unexpected status %d", e.StatusCode)
}

// Client issues GET requests against the market data provider with the
// shared API-key header and a bounded per-call wait.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *xhttp.Client
	metrics *metrics.Recorder
}

// Option configures Client.
type Option func(*Client)

// WithMetrics attaches a metrics recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *Client) { c.metrics = rec }
}

// NewClient creates a provider client. apiKey may be empty; every fetch then
// fails fast with ErrNoAPIKey.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	return c
}

// APIKeyConfigured reports whether the shared credential is present.
func (c *Client) APIKeyConfigured() bool { return c.apiKey != "" }

// FetchJSON issues one GET against path and decodes the 200 response into
// dest. Outcomes: nil on success, ErrNotFound on 404, *StatusError on other
// statuses, ErrTimeout on an exceeded deadline, ErrNetwork on transport
// failure. Malformed payloads are reported as a wrapped decode error and are
// treated by callers exactly like an unavailable provider.
func (c *Client) FetchJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if !c.APIKeyConfigured() {
		return ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	qp := map[string][]string(query)
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		Headers:     map[string]string{"X-Api-Key": c.apiKey},
		QueryParams: qp,
	})
	if err != nil {
		err = classifyTransport(path, err)
		c.record(path, err)
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == 200:
		// fall through to decode
	case resp.StatusCode == 404:
		io.Copy(io.Discard, resp.Body)
		c.record(path, ErrNotFound)
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	default:
		io.Copy(io.Discard, resp.Body)
		serr := &StatusError{StatusCode: resp.StatusCode}
		c.record(path, serr)
		return fmt.Errorf("%s: %w", path, serr)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			c.record(path, err)
			return fmt.Errorf("%s: decode: %w", path, err)
		}
	}

	c.record(path, nil)
	return nil
}

func classifyTransport(path string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%s: %w", path, ErrTimeout)
	}
	return fmt.Errorf("%s: %w: %v", path, ErrNetwork, err)
}

func (c *Client) record(endpoint string, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	var serr *StatusError
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrTimeout):
		outcome = "timeout"
	case errors.Is(err, ErrNetwork):
		outcome = "network_error"
	case errors.As(err, &serr):
		outcome = "provider_error"
	default:
		outcome = "parse_error"
	}
	c.metrics.RecordUpstreamRequest(endpoint, outcome)
}
