// Package httpuser implements the HTTP virtual users: the request
// client, the task bodies for each query endpoint, and the built-in
// profile registry.
package httpuser

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"poolburn/internal/classify"
	"poolburn/internal/core"
)

// maxBodySize limits how much of a response body is read for decoding.
const maxBodySize = 1 << 20

// Client issues GET requests against the target service and decodes the
// timing fields its endpoints report. Safe for concurrent use.
type Client struct {
	base  string
	hc    *http.Client
	debug *DebugLogger
}

// NewClient creates a client for the target base URL. A nil httpClient
// gets a default with a 30s timeout; that timeout is what converts a
// starved connection pool into a status-0 response.
func NewClient(baseURL string, httpClient *http.Client, debug *DebugLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: baseURL, hc: httpClient, debug: debug}
}

// GetTimings performs a GET on path and returns the decoded response
// plus wall-clock duration. Any transport failure (timeout, refused
// connection, cancelled context) comes back as StatusCode 0 with zeroed
// fields; it is never surfaced as an error.
func (c *Client) GetTimings(ctx context.Context, name, path string) (classify.Response, time.Duration) {
	userID := core.UserIDFromContext(ctx)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		duration := time.Since(start)
		c.debug.LogError(userID, name, err.Error(), duration)
		return classify.Response{}, duration
	}

	c.debug.LogRequest(userID, name, req)

	resp, err := c.hc.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.debug.LogError(userID, name, err.Error(), duration)
		return classify.Response{}, duration
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	_, _ = io.Copy(io.Discard, resp.Body) // drain errors are ignorable

	c.debug.LogResponse(userID, name, resp, body, duration)

	return decodeTimings(resp.StatusCode, body), duration
}

// decodeTimings pulls the timing fields out of a JSON body. Missing
// fields and malformed bodies decode to 0, which by contract never
// fails a threshold on its own.
func decodeTimings(statusCode int, body []byte) classify.Response {
	resp := classify.Response{StatusCode: statusCode}
	if !gjson.ValidBytes(body) {
		return resp
	}
	resp.QueryTimeMs = gjson.GetBytes(body, "queryTimeMs").Float()
	resp.ResponseTimeMs = gjson.GetBytes(body, "responseTimeMs").Float()
	return resp
}
