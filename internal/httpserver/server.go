// Package httpserver serves the site: full pages, htmx fragments, SEO files
// and static assets.
package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Elsevier11/bbt-consulting-sito/content"
	"github.com/Elsevier11/bbt-consulting-sito/internal/cms"
	"github.com/Elsevier11/bbt-consulting-sito/internal/i18n"
	custommw "github.com/Elsevier11/bbt-consulting-sito/internal/middleware"
	"github.com/Elsevier11/bbt-consulting-sito/internal/observability"
	"github.com/Elsevier11/bbt-consulting-sito/internal/render"
	"github.com/Elsevier11/bbt-consulting-sito/internal/seo"
	"github.com/Elsevier11/bbt-consulting-sito/locales"
	"github.com/Elsevier11/bbt-consulting-sito/public"
	"github.com/Elsevier11/bbt-consulting-sito/templates"
)

const staticMaxAge = 7 * 24 * 60 * 60

// Config holds runtime options for the HTTP server. Nil dependencies are
// replaced by the embedded defaults.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Site SiteInfo

	Translations *i18n.Bundle
	Templates    *render.Engine
	Catalog      *cms.Catalog
	Content      *cms.Client
	Static       fs.FS
	// Dev disables asset caching.
	Dev    bool
	Logger *zap.Logger
}

// SiteInfo holds the public facts about the site.
type SiteInfo struct {
	Name          string
	BaseURL       string
	BookingURL    string
	PartnerURL    string
	DefaultLocale string
	Locales       []string
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	router, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout:      durationOr(cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

// NewRouter builds the router serving every route of the site. The static
// exporter drives it directly.
func NewRouter(cfg Config) (*chi.Mux, error) {
	s, err := newSite(cfg)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(s.logger))
	router.Use(observability.RequestLogger())
	router.Use(chimw.Recoverer)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	maxAge := staticMaxAge
	if cfg.Dev {
		maxAge = 0
	}
	router.Handle("/static/*", http.StripPrefix("/static", custommw.AssetsWithCache(s.static, maxAge)))
	router.Get("/sitemap.xml", s.sitemap)
	router.Get("/robots.txt", s.robots)

	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.Locale(s.bundle))

		r.Get("/", s.page)
		r.Get("/{page}", s.page)
		r.Get("/case-studies/{index}", s.caseStudy)
		r.Get("/case-studies/{index}/demo", s.caseStudyDemo)

		RegisterFragment(r, "/fragments/case-studies/close", s.closeCaseStudy)
		RegisterFragment(r, "/fragments/menu", s.menuFragment)

		r.NotFound(s.notFound)
	})

	return router, nil
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}

// site bundles the read-only dependencies shared by every request.
type site struct {
	info    SiteInfo
	seo     seo.Site
	bundle  *i18n.Bundle
	engine  *render.Engine
	catalog *cms.Catalog
	content *cms.Client
	static  fs.FS
	logger  *zap.Logger
	started time.Time
}

func newSite(cfg Config) (*site, error) {
	info := cfg.Site
	if strings.TrimSpace(info.Name) == "" {
		info.Name = "BBT Consulting"
	}
	if info.DefaultLocale == "" {
		info.DefaultLocale = "it"
	}
	if len(info.Locales) == 0 {
		info.Locales = []string{info.DefaultLocale}
	}
	info.BaseURL = strings.TrimRight(info.BaseURL, "/")

	s := &site{info: info, logger: cfg.Logger, started: time.Now().UTC()}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	var err error
	if s.bundle = cfg.Translations; s.bundle == nil {
		if s.bundle, err = i18n.Load(locales.FS, info.DefaultLocale, info.Locales); err != nil {
			return nil, fmt.Errorf("httpserver: translations: %w", err)
		}
	}
	if s.engine = cfg.Templates; s.engine == nil {
		if s.engine, err = render.New(templates.FS, s.bundle); err != nil {
			return nil, fmt.Errorf("httpserver: templates: %w", err)
		}
	}
	if s.catalog = cfg.Catalog; s.catalog == nil {
		if s.catalog, err = cms.LoadCatalog(content.FS, catalogLangs(info), info.BookingURL); err != nil {
			return nil, fmt.Errorf("httpserver: case studies: %w", err)
		}
	}
	if s.content = cfg.Content; s.content == nil {
		s.content = cms.NewClient(cms.Options{
			Content:       content.FS,
			FallbackLangs: catalogLangs(info),
			Logger:        s.logger,
		})
	}
	if s.static = cfg.Static; s.static == nil {
		if s.static, err = public.StaticFS(); err != nil {
			return nil, fmt.Errorf("httpserver: embed static: %w", err)
		}
	}

	s.seo = seo.Site{
		Name:          info.Name,
		BaseURL:       info.BaseURL,
		DefaultLocale: info.DefaultLocale,
		Locales:       s.bundle.Supported(),
		Image:         "/static/img/logo.svg",
	}
	return s, nil
}

// catalogLangs lists the default locale first.
func catalogLangs(info SiteInfo) []string {
	out := []string{info.DefaultLocale}
	for _, l := range info.Locales {
		if l != info.DefaultLocale {
			out = append(out, l)
		}
	}
	return out
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
