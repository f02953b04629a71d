package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/metrics"
)

// FetchError reports a failed upstream read. StatusCode is 0 when the
// request never produced a response.
type FetchError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Resource, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client reads the employee directory and monthly review list from the
// upstream service. Requests are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// getJSON issues a GET and decodes a 2xx body into out.
func (c *Client) getJSON(ctx context.Context, resource, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(resource, "error").Inc()
		return &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(resource, "bad_status").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FetchError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(resource, "decode_error").Inc()
		return &FetchError{Resource: resource, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}

	metrics.UpstreamRequests.WithLabelValues(resource, "ok").Inc()
	return nil
}
