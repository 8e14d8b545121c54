package downstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auction-gateway/internal/aggregationerrors"
	"auction-gateway/internal/metrics"
	"auction-gateway/internal/models"
	"auction-gateway/utils"
)

// StatusTransportFault is the synthetic status recorded when no HTTP response was received
const StatusTransportFault = 599

const defaultTimeout = 5 * time.Second

// Config is the explicit per-client configuration; there are no package-level defaults to mutate
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls one downstream service and turns every response into a ServiceOutcome
type Client struct {
	name    string
	baseURL *url.URL
	timeout time.Duration
	http    *http.Client
}

// NewClient validates cfg and returns a client labelled name for logs and metrics
func NewClient(name string, cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("downstream %s: %w: %v", name, aggregationerrors.ErrInvalidBaseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("downstream %s: %w: %q must be an absolute http(s) url", name, aggregationerrors.ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		name:    name,
		baseURL: base,
		timeout: timeout,
		http:    httpClient,
	}, nil
}

// Name returns the label the client was built with
func (c *Client) Name() string {
	return c.name
}

// Call issues GET {base}{path}, forwarding auth verbatim when non-empty.
// Downstream HTTP statuses and transport faults are both reported in the outcome;
// the error is non-nil only for an invalid path.
func (c *Client) Call(ctx context.Context, path, auth string) (models.ServiceOutcome, error) {
	target, err := c.resolve(path)
	if err != nil {
		return models.ServiceOutcome{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	outcome := c.do(ctx, target, auth)
	metrics.ObserveDownstreamCall(c.name, outcome.Status, time.Since(start))

	fields := map[string]any{
		"service": c.name,
		"url":     target,
		"status":  outcome.Status,
		"latency": time.Since(start).String(),
	}
	if outcome.Status == StatusTransportFault {
		fields["message"] = outcome.Message
		utils.Warn("downstream: transport fault", fields)
	} else {
		utils.Debug("downstream: call completed", fields)
	}

	return outcome, nil
}

func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("downstream %s: %w: %v", c.name, aggregationerrors.ErrInvalidPath, err)
	}
	if ref.IsAbs() || ref.Host != "" || !strings.HasPrefix(ref.Path, "/") {
		return "", fmt.Errorf("downstream %s: %w: %q must be a relative path starting with /", c.name, aggregationerrors.ErrInvalidPath, path)
	}

	return strings.TrimSuffix(c.baseURL.String(), "/") + path, nil
}

func (c *Client) do(ctx context.Context, target, auth string) models.ServiceOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return transportFault(err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return transportFault(err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			utils.Warn("downstream: failed to close response body", map[string]any{"service": c.name, "error": closeErr.Error()})
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return transportFault(fmt.Errorf("read body: %w", err))
	}

	return models.ServiceOutcome{
		Data:    payload(body),
		Status:  res.StatusCode,
		Message: statusMessage(res.StatusCode),
	}
}

// payload keeps JSON bodies as-is and wraps anything else as a JSON string
func payload(body []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}

func statusMessage(code int) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s", code, http.StatusText(code)))
}

func transportFault(err error) models.ServiceOutcome {
	return models.ServiceOutcome{
		Status:  StatusTransportFault,
		Message: fmt.Sprintf("%d Network Error: %v", StatusTransportFault, err),
	}
}
