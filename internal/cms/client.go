// Package cms serves the editable content of the site: the legal pages and
// the case-study catalogue.
package cms

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const defaultCacheTTL = 5 * time.Minute

// Options configures a Client.
type Options struct {
	// BaseURL of the remote CMS. Empty serves the embedded content only.
	BaseURL string
	// Content holds legal/<lang>/<slug>.md files.
	Content fs.FS
	// FallbackLangs are tried, in order, after the requested language.
	FallbackLangs []string
	CacheTTL      time.Duration
	HTTPClient    *http.Client
	Logger        *zap.Logger
}

// Client provides read-only access to legal pages, consulting the remote CMS
// when configured and the embedded markdown otherwise.
type Client struct {
	baseURL   string
	http      *http.Client
	content   fs.FS
	fallbacks []string
	cache     *ttlCache
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	logger    *zap.Logger
}

// NewClient constructs a Client from opts.
func NewClient(opts Options) *Client {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fallbacks := opts.FallbackLangs
	if len(fallbacks) == 0 {
		fallbacks = []string{"it", "en"}
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		http:      httpClient,
		content:   opts.Content,
		fallbacks: fallbacks,
		cache:     newTTLCache(ttl),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newLegalHTMLPolicy(),
		logger: logger,
	}
}

func newLegalHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}
