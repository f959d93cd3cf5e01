// ABOUTME: Standard HTTP client implementation backing the content fetcher
// ABOUTME: Single attempt per call; retry policy, if any, belongs to the caller

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/copus-io/copus-edge/core/interfaces"
)

const userAgent = "CopusEdge/1.0"

// StandardHTTPClient implements the HTTPClient interface using net/http.
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a single HTTP GET request. Failures surface directly;
// callers decide whether to degrade or retry.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface.
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code.
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body stream.
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header.
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
