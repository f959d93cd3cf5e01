package handlers

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/copus-io/copus-edge/core/interfaces"
	"github.com/copus-io/copus-edge/pkg/config"
)

// routedResponse is one canned response, matched by URL substring.
type routedResponse struct {
	status      int
	body        string
	contentType string
}

type mockHTTPClient struct {
	routes map[string]routedResponse
	calls  []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.calls = append(m.calls, url)
	for fragment, rr := range m.routes {
		if strings.Contains(url, fragment) {
			return &mockResponse{routed: rr}, nil
		}
	}
	return &mockResponse{routed: routedResponse{status: 404, body: `{"status":0}`}}, nil
}

type mockResponse struct {
	routed routedResponse
}

func (m *mockResponse) StatusCode() int     { return m.routed.status }
func (m *mockResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(m.routed.body)) }
func (m *mockResponse) Header(key string) string {
	if key == "Content-Type" {
		return m.routed.contentType
	}
	return ""
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

type mockCache struct {
	store map[string][]byte
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, io.EOF
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Environments: config.Environments{
			Production: config.Environment{
				ContentAPIBase: "https://api-prod.copus.network",
				SiteBase:       "https://copus.network",
				OriginBase:     "https://origin.copus.network",
			},
			Test: config.Environment{
				ContentAPIBase: "https://api-test.copus.network",
				SiteBase:       "https://test.copus.network",
				OriginBase:     "https://origin-test.copus.network",
			},
			TestHostMarker: "test.",
		},
	}
}

// newTestHandler wires a Handler over canned upstream responses.
func newTestHandler(routes map[string]routedResponse) (*Handler, *mockHTTPClient) {
	httpClient := &mockHTTPClient{routes: routes}
	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Cache:      &mockCache{},
		Logger:     &mockLogger{},
	}
	return NewHandler(deps, testConfig()), httpClient
}
