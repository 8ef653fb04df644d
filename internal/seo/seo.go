// Package seo builds page metadata, structured data, the sitemap and
// robots.txt.
package seo

import (
	"net/url"
	"strings"

	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	Locale      string
	SiteName    string
}

type Twitter struct {
	Card  string
	Image string
}

// Alternate is an hreflang link to the same page in another language.
type Alternate struct {
	Lang string
	Href string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Lang        string
	Alternates  []Alternate
	OG          OpenGraph
	Twitter     Twitter
	NoIndex     bool
}

// Site carries the facts shared by every page.
type Site struct {
	Name          string
	BaseURL       string
	DefaultLocale string
	Locales       []string
	Image         string
}

// Translator resolves i18n keys.
type Translator interface {
	T(lang, key string) string
}

// ogLocales maps site languages to Open Graph locales.
var ogLocales = map[string]string{
	"it": "it_IT",
	"en": "en_GB",
}

// Build returns the metadata of page p served at path in lang. path differs
// from p.Path() for case-study detail URLs.
func Build(site Site, tr Translator, p view.Page, path, lang string) Meta {
	if path == "" {
		path = p.Path()
	}
	title := tr.T(lang, "seo."+p.String()+".title")
	desc := tr.T(lang, "seo."+p.String()+".description")
	canonical := Absolute(site.BaseURL, path)
	image := ""
	if site.Image != "" {
		image = Absolute(site.BaseURL, site.Image)
	}
	m := Meta{
		Title:       title,
		Description: desc,
		Canonical:   LocalizedURL(site, path, lang),
		Lang:        lang,
		OG: OpenGraph{
			Title:       title,
			Description: desc,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			Locale:      ogLocales[lang],
			SiteName:    site.Name,
		},
		Twitter: Twitter{Card: "summary_large_image", Image: image},
	}
	for _, l := range site.Locales {
		m.Alternates = append(m.Alternates, Alternate{Lang: l, Href: LocalizedURL(site, path, l)})
	}
	if len(site.Locales) > 1 {
		m.Alternates = append(m.Alternates, Alternate{Lang: "x-default", Href: canonical})
	}
	return m
}

// NotFound returns the metadata of the 404 page, which is never indexed.
func NotFound(site Site, tr Translator, lang string) Meta {
	title := tr.T(lang, "seo.notfound.title")
	return Meta{
		Title:   title,
		Lang:    lang,
		NoIndex: true,
		OG:      OpenGraph{Title: title, Type: "website", SiteName: site.Name, Locale: ogLocales[lang]},
		Twitter: Twitter{Card: "summary"},
	}
}

// Absolute joins baseURL and path.
func Absolute(baseURL, path string) string {
	base := strings.TrimRight(baseURL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// LocalizedURL is the absolute URL of path in lang. The default language
// has no hl parameter.
func LocalizedURL(site Site, path, lang string) string {
	abs := Absolute(site.BaseURL, path)
	if lang == "" || lang == site.DefaultLocale {
		return abs
	}
	return abs + "?hl=" + url.QueryEscape(lang)
}
