package httpserver_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Elsevier11/bbt-consulting-sito/internal/middleware"
	"github.com/Elsevier11/bbt-consulting-sito/internal/testutil"
	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

type requestOption func(*http.Request)

func htmxTarget(target string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("HX-Request", "true")
		r.Header.Set("HX-Target", target)
	}
}

func header(key, value string) requestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func get(t *testing.T, url string, opts ...requestOption) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(req)
	}
	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestEveryPageRendersExactlyOneView(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	for _, p := range view.Pages() {
		resp, body := get(t, ts.URL+p.Path())
		require.Equal(t, http.StatusOK, resp.StatusCode, p.Path())

		doc := testutil.ParseHTML(t, body)
		views := doc.Find("#main [data-view]")
		require.Equal(t, 1, views.Length(), "one view for %s", p)
		require.Equal(t, p.String(), views.AttrOr("data-view", ""))
		require.Equal(t, 0, doc.Find("#modal .modal").Length(), "no overlay on %s", p)
		require.Equal(t, "it", doc.Find("html").AttrOr("lang", ""))
	}
}

func TestHomeDocument(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	_, body := get(t, ts.URL+"/")
	doc := testutil.ParseHTML(t, body)

	require.Equal(t, "BBT Consulting | Sviluppo d'impresa con l'intelligenza artificiale", doc.Find("title").First().Text())
	require.Equal(t, testutil.BaseURL+"/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	require.Equal(t, 3, doc.Find(`link[rel="alternate"]`).Length(), "it, en and x-default")
	require.Equal(t, 0, doc.Find("nav.breadcrumbs").Length())
	require.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())
	require.Equal(t, 1, doc.Find(`script[src*="htmx.org"]`).Length())

	active := doc.Find(".primary-nav a.is-active")
	require.Equal(t, 1, active.Length())
	require.Equal(t, "/", active.AttrOr("href", ""))

	partner := doc.Find(`.site-footer a.is-external`)
	require.Equal(t, testutil.PartnerURL, partner.AttrOr("href", ""))
	require.Equal(t, "_blank", partner.AttrOr("target", ""))
}

func TestHomeAliasRedirects(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, _ := get(t, ts.URL+"/home")
	require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	for _, path := range []string{"/servizi", "/case-studies/0/extra", "/a/b/c"} {
		resp, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)

		doc := testutil.ParseHTML(t, body)
		require.Equal(t, "notfound", doc.Find("[data-view]").AttrOr("data-view", ""))
		require.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
		require.Equal(t, 0, doc.Find(".primary-nav a.is-active").Length())
	}
}

func TestHTMXNavigationReturnsContentPartial(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, body := get(t, ts.URL+"/contact", htmxTarget("main"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "innerHTML show:window:top", resp.Header.Get("HX-Reswap"))
	require.Contains(t, resp.Header.Values("Vary"), "HX-Request")
	require.NotContains(t, strings.ToLower(string(body)), "<!doctype")

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find("[data-view]").Length())
	require.Equal(t, "contact", doc.Find("[data-view]").AttrOr("data-view", ""))
	require.Equal(t, "Contatti | BBT Consulting", doc.Find("title").First().Text())

	headerEl := doc.Find("#site-header")
	require.Equal(t, "true", headerEl.AttrOr("hx-swap-oob", ""))
	require.Equal(t, "/contact", headerEl.Find(".primary-nav a.is-active").AttrOr("href", ""))

	modal := doc.Find("#modal")
	require.Equal(t, "true", modal.AttrOr("hx-swap-oob", ""))
	require.Equal(t, 0, modal.Children().Length())
}

func TestHistoryRestoreGetsFullPage(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, body := get(t, ts.URL+"/about", htmxTarget("main"), header("HX-History-Restore-Request", "true"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get("HX-Reswap"))
	require.Contains(t, strings.ToLower(string(body)), "<!doctype html>")
}

func TestCaseStudyOpensOverlay(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, body := get(t, ts.URL+"/case-studies/0")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "case-studies", doc.Find("#main [data-view]").AttrOr("data-view", ""))

	overlay := doc.Find("#modal .modal")
	require.Equal(t, 1, overlay.Length())
	require.Equal(t, "0", overlay.AttrOr("data-case", ""))
	require.Equal(t, "Smart Pipeline Control", testutil.Text(overlay.Find("h2")))
	require.Equal(t, 4, overlay.Find(".feature-list li").Length())
	require.Equal(t, "/case-studies/0/demo", overlay.Find(".modal-actions .btn-ghost").AttrOr("href", ""))

	crumbs := doc.Find("nav.breadcrumbs li")
	require.Equal(t, 3, crumbs.Length())
	require.Equal(t, "Smart Pipeline Control", testutil.Text(crumbs.Last()))
	require.Equal(t, 3, doc.Find(`script[type="application/ld+json"]`).Length())
}

func TestCaseStudyModalFragment(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, body := get(t, ts.URL+"/case-studies/1", htmxTarget("modal"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get("HX-Reswap"), "opening the overlay keeps the scroll position")

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 0, doc.Find("[data-view]").Length(), "fragment carries only the overlay")
	require.Equal(t, 0, doc.Find("#site-header").Length())
	require.Equal(t, "NIS2 Compliance Navigator", testutil.Text(doc.Find(".modal h2")))
	require.Equal(t, "/fragments/case-studies/close", doc.Find(".modal-close").AttrOr("hx-get", ""))
}

func TestCallToActionRedirectsToBooking(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	_, body := get(t, ts.URL+"/case-studies")
	doc := testutil.ParseHTML(t, body)
	cards := doc.Find(".case-card")
	require.Equal(t, 4, cards.Length())

	cta := doc.Find(".case-card.is-cta")
	require.Equal(t, 1, cta.Length())
	require.Equal(t, "_blank", cta.AttrOr("target", ""))
	_, hasHX := cta.Attr("hx-get")
	require.False(t, hasHX, "the call-to-action card never targets the overlay")

	resp, _ := get(t, ts.URL+cta.AttrOr("href", ""))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, testutil.BookingURL, resp.Header.Get("Location"))
}

func TestCaseStudyInvalidIndex(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	for _, path := range []string{"/case-studies/9", "/case-studies/-1", "/case-studies/abc", "/case-studies/3/demo"} {
		resp, _ := get(t, ts.URL+path)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestDemoClosesOverlayAndNavigatesToContact(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, _ := get(t, ts.URL+"/case-studies/0/demo")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/contact", resp.Header.Get("Location"))

	resp, body := get(t, ts.URL+"/case-studies/0/demo", htmxTarget("main"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/contact", resp.Header.Get("HX-Push-Url"))

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "contact", doc.Find("[data-view]").AttrOr("data-view", ""))
	require.Equal(t, 0, doc.Find("#modal").Children().Length(), "overlay is cleared with the navigation")
}

func TestCloseFragment(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, _ := get(t, ts.URL+"/fragments/case-studies/close")
	require.Equal(t, http.StatusNotFound, resp.StatusCode, "fragments are htmx only")

	resp, body := get(t, ts.URL+"/fragments/case-studies/close", htmxTarget("modal"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/case-studies", resp.Header.Get("HX-Push-Url"))
	require.Empty(t, body)
}

func TestMenuFragmentToggles(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	_, body := get(t, ts.URL+"/fragments/menu?expanded=false&page=services", htmxTarget("mobile-menu"))
	doc := testutil.ParseHTML(t, body)
	menu := doc.Find("#mobile-menu")
	require.True(t, menu.HasClass("is-open"))
	_, hidden := doc.Find("#mobile-panel").Attr("hidden")
	require.False(t, hidden)
	require.Equal(t, "true", doc.Find(".menu-toggle").AttrOr("aria-expanded", ""))
	require.Equal(t, "/services", doc.Find("#mobile-panel a.is-active").AttrOr("href", ""))

	_, body = get(t, ts.URL+"/fragments/menu?expanded=true&page=services", htmxTarget("mobile-menu"))
	doc = testutil.ParseHTML(t, body)
	require.False(t, doc.Find("#mobile-menu").HasClass("is-open"))
	_, hidden = doc.Find("#mobile-panel").Attr("hidden")
	require.True(t, hidden)
	require.Equal(t, "Apri menu", testutil.Text(doc.Find(".menu-toggle")))
}

func TestMenuWithoutScript(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	_, body := get(t, ts.URL+"/about?menu=open")
	doc := testutil.ParseHTML(t, body)
	require.True(t, doc.Find("#mobile-menu").HasClass("is-open"))
	require.Equal(t, "/about", doc.Find(".menu-toggle").AttrOr("href", ""), "toggle link closes the menu")
	require.Equal(t, "about", doc.Find("[data-view]").AttrOr("data-view", ""))

	_, body = get(t, ts.URL+"/about")
	doc = testutil.ParseHTML(t, body)
	require.False(t, doc.Find("#mobile-menu").HasClass("is-open"))
	require.Equal(t, "/about?menu=open", doc.Find(".menu-toggle").AttrOr("href", ""))
}

func TestLocaleSelection(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, body := get(t, ts.URL+"/contact?hl=en")
	require.Equal(t, "en", resp.Header.Get("Content-Language"))
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "hl" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.Equal(t, "en", cookie.Value)

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "Contact | BBT Consulting", doc.Find("title").First().Text())
	require.Equal(t, testutil.BaseURL+"/contact?hl=en", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	require.Equal(t, "true", doc.Find(`.lang-switch a[hreflang="en"]`).AttrOr("aria-current", ""))

	_, body = get(t, ts.URL+"/case-studies/2", header("Accept-Language", "en-GB,en;q=0.9"))
	doc = testutil.ParseHTML(t, body)
	require.Equal(t, "Performance Audit Tool", testutil.Text(doc.Find("#modal h2")))
}

func TestStaticExportMarkup(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	exportHeader := header(middleware.ExportHeader, "1")

	_, body := get(t, ts.URL+"/case-studies", exportHeader)
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 0, doc.Find("[hx-get]").Length())
	require.Equal(t, 0, doc.Find(`script[src*="htmx.org"]`).Length())
	require.Equal(t, 0, doc.Find(".lang-switch a").Length())
	require.Equal(t, testutil.BookingURL, doc.Find(".case-card.is-cta").AttrOr("href", ""))
	require.Equal(t, "#mobile-panel", doc.Find(".menu-toggle").AttrOr("href", ""))

	_, body = get(t, ts.URL+"/case-studies/0", exportHeader)
	doc = testutil.ParseHTML(t, body)
	require.Equal(t, "/contact", doc.Find(".modal-actions .btn-ghost").AttrOr("href", ""))
	require.Equal(t, "/case-studies", doc.Find(".modal-close").AttrOr("href", ""))
}

func TestLegalPageRendersMarkdown(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, body := get(t, ts.URL+"/privacy")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	legal := doc.Find(`[data-view="privacy"]`)
	require.Equal(t, "Privacy Policy", testutil.Text(legal.Find("h1").First()))
	require.Greater(t, legal.Find(".legal-content h2").Length(), 0)
	require.Equal(t, "2025-01-15", legal.Find("time").AttrOr("datetime", ""))
}

func TestOperationalRoutes(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))

	resp, body = get(t, ts.URL+"/robots.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Sitemap: "+testutil.BaseURL+"/sitemap.xml")

	resp, body = get(t, ts.URL+"/sitemap.xml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	require.Contains(t, string(body), "<loc>"+testutil.BaseURL+"/case-studies</loc>")

	resp, _ = get(t, ts.URL+"/static/css/site.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("ETag"))
	require.Contains(t, resp.Header.Get("Cache-Control"), "max-age=604800")
}

func TestDevModeDisablesAssetCaching(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithDev())
	resp, _ := get(t, ts.URL+"/static/js/site.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
}

