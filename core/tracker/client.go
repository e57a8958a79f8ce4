package tracker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const pageSize = 50

// RESTClient talks to the tracker's REST and agile APIs.
type RESTClient struct {
	baseURL    string
	username   string
	apiToken   string
	userAgent  string
	maxRetry   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a REST client from configuration.
func NewClient(cfg Config, logger *zap.Logger) (*RESTClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("tracker base URL not configured")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("tracker API token not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "schema-sync/1.0"
	}

	return &RESTClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		username:   cfg.Username,
		apiToken:   cfg.APIToken,
		userAgent:  userAgent,
		maxRetry:   time.Duration(cfg.MaxRetrySeconds) * time.Second,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logger,
	}, nil
}

// BaseURL returns the instance URL the client talks to.
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

// do executes a request. GET requests are retried with exponential backoff
// on transient failures; every other method is attempted exactly once.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	attempt := func() error {
		return c.send(ctx, method, apiURL, payload, out)
	}

	if method != http.MethodGet || c.maxRetry <= 0 {
		return attempt()
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxRetry
	return backoff.RetryNotify(func() error {
		err := attempt()
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx), func(err error, wait time.Duration) {
		c.logger.Warn("Retrying tracker read", zap.String("path", path), zap.Duration("wait", wait), zap.Error(err))
	})
}

func (c *RESTClient) send(ctx context.Context, method, apiURL string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setAuth(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyResponse(resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// setAuth uses basic auth when a username is configured, bearer otherwise.
func (c *RESTClient) setAuth(req *http.Request) {
	if c.username != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.apiToken))
		req.Header.Set("Authorization", "Basic "+auth)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
}

// page is the tracker's offset pagination envelope.
type page[T any] struct {
	StartAt    int  `json:"startAt"`
	MaxResults int  `json:"maxResults"`
	Total      int  `json:"total"`
	IsLast     bool `json:"isLast"`
	Values     []T  `json:"values"`
}

// getPaged follows startAt/maxResults pagination until the last page.
func getPaged[T any](ctx context.Context, c *RESTClient, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	var all []T
	startAt := 0
	for {
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(pageSize))

		var p page[T]
		if err := c.do(ctx, http.MethodGet, path, query, nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Values...)

		if p.IsLast || len(p.Values) == 0 {
			break
		}
		startAt += len(p.Values)
		if p.Total > 0 && startAt >= p.Total {
			break
		}
	}
	return all, nil
}
