package testutil

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Elsevier11/bbt-consulting-sito/internal/httpserver"
)

// Test site values, also used by assertions.
const (
	BookingURL = "https://booking.example.com/30min"
	PartnerURL = "https://partner.example.com"
	BaseURL    = "https://www.example.com"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithSite overrides the site facts.
func WithSite(site httpserver.SiteInfo) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Site = site
	}
}

// WithDev disables asset caching as in development mode.
func WithDev() ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Dev = true
	}
}

// Config returns the configuration NewServer starts from.
func Config(t testing.TB, opts ...ServerOption) httpserver.Config {
	t.Helper()

	cfg := httpserver.Config{
		Address: ":0",
		Site: httpserver.SiteInfo{
			Name:          "BBT Consulting",
			BaseURL:       BaseURL,
			BookingURL:    BookingURL,
			PartnerURL:    PartnerURL,
			DefaultLocale: "it",
			Locales:       []string{"it", "en"},
		},
		Logger: zaptest.NewLogger(t),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewServer constructs an httptest server running the site HTTP stack with
// the embedded content.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	srv, err := httpserver.New(Config(t, opts...))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
