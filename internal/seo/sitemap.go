package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string        `xml:"loc"`
	LastMod    string        `xml:"lastmod,omitempty"`
	ChangeFreq string        `xml:"changefreq,omitempty"`
	Priority   string        `xml:"priority,omitempty"`
	Links      []sitemapLink `xml:"xhtml:link"`
}

type sitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Sitemap renders sitemap.xml listing every page with its hreflang
// alternates.
func Sitemap(site Site, pages []view.Page, lastMod time.Time) ([]byte, error) {
	set := urlSet{
		NS:    "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, p := range pages {
		u := sitemapURL{
			Loc:        Absolute(site.BaseURL, p.Path()),
			ChangeFreq: "monthly",
			Priority:   priority(p),
		}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.UTC().Format("2006-01-02")
		}
		if len(site.Locales) > 1 {
			for _, l := range site.Locales {
				u.Links = append(u.Links, sitemapLink{Rel: "alternate", HrefLang: l, Href: LocalizedURL(site, p.Path(), l)})
			}
		}
		set.URLs = append(set.URLs, u)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func priority(p view.Page) string {
	switch {
	case p == view.Home:
		return "1.0"
	case p.IsLegal():
		return "0.3"
	default:
		return "0.8"
	}
}

// Robots renders robots.txt allowing everything except the htmx fragments.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /fragments/\n")
	b.WriteString("\nSitemap: " + Absolute(baseURL, "/sitemap.xml") + "\n")
	return b.String()
}
