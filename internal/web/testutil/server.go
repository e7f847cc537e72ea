package testutil

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/anns25/stayhub-web/internal/web/httpserver"
	"github.com/anns25/stayhub-web/internal/web/observability"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath mounts the auth pages under path.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithTheme sets the default container theme.
func WithTheme(theme string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Theme = theme
	}
}

// WithAuthEndpoint sets where card forms post.
func WithAuthEndpoint(endpoint string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.AuthEndpoint = endpoint
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithMetrics shares metrics with the caller for assertions.
func WithMetrics(metrics *observability.Metrics) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Metrics = metrics
	}
}

// NewServer constructs an httptest server running the web HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		BasePath:       "/",
		AuthEndpoint:   "/api/auth",
		Theme:          "light",
		Backdrop:       true,
		CSRFCookieName: "stayhub_csrf",
		CSRFHeaderName: "X-CSRF-Token",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handler, err := httpserver.NewHandler(cfg)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}
