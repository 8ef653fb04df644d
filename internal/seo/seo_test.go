package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

type mapTranslator map[string]string

func (m mapTranslator) T(lang, key string) string {
	if v, ok := m[lang+":"+key]; ok {
		return v
	}
	return key
}

var testSite = Site{
	Name:          "BBT Consulting",
	BaseURL:       "https://www.example.com/",
	DefaultLocale: "it",
	Locales:       []string{"it", "en"},
	Image:         "/static/img/og.png",
}

func TestBuild(t *testing.T) {
	tr := mapTranslator{
		"en:seo.services.title":       "Services | BBT",
		"en:seo.services.description": "What we do",
	}
	m := Build(testSite, tr, view.Services, "", "en")

	require.Equal(t, "Services | BBT", m.Title)
	require.Equal(t, "What we do", m.Description)
	require.Equal(t, "https://www.example.com/services?hl=en", m.Canonical)
	require.Equal(t, "https://www.example.com/services", m.OG.URL)
	require.Equal(t, "en_GB", m.OG.Locale)
	require.Equal(t, "https://www.example.com/static/img/og.png", m.OG.Image)
	require.Equal(t, []Alternate{
		{Lang: "it", Href: "https://www.example.com/services"},
		{Lang: "en", Href: "https://www.example.com/services?hl=en"},
		{Lang: "x-default", Href: "https://www.example.com/services"},
	}, m.Alternates)
	require.False(t, m.NoIndex)
}

func TestBuildHomeUsesRoot(t *testing.T) {
	m := Build(testSite, mapTranslator{}, view.Home, "", "it")
	require.Equal(t, "https://www.example.com/", m.Canonical)
	require.Equal(t, "seo.home.title", m.Title, "missing keys surface as the key")
}

func TestNotFoundIsNoIndex(t *testing.T) {
	m := NotFound(testSite, mapTranslator{"it:seo.notfound.title": "Non trovata"}, "it")
	require.True(t, m.NoIndex)
	require.Equal(t, "Non trovata", m.Title)
}

func TestOrganizationJSONLD(t *testing.T) {
	raw := JSON(Organization("BBT Consulting", "BBT S.r.l.", "https://www.example.com/", "", "IT05371510263", &PostalAddress{
		Street: "Via Vicenza 32", PostalCode: "31050", Locality: "Vedelago", Region: "TV", Country: "IT",
	}))
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, "Organization", got["@type"])
	require.Equal(t, "BBT S.r.l.", got["legalName"])
	require.NotContains(t, got, "logo")
	addr := got["address"].(map[string]any)
	require.Equal(t, "Vedelago", addr["addressLocality"])
}

func TestBreadcrumbListPositions(t *testing.T) {
	list := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://x/"}, {Name: "Contact", Item: "https://x/contact"}})
	items := list["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[1]["position"])
}

func TestSitemapListsEveryPage(t *testing.T) {
	out, err := Sitemap(testSite, view.Pages(), time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "<?xml"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)
	locs := doc.Find("url > loc")
	require.Equal(t, len(view.Pages()), locs.Length())
	require.Equal(t, "https://www.example.com/", locs.First().Text())
	require.Equal(t, "2025-01-15", doc.Find("url > lastmod").First().Text())
	require.Contains(t, string(out), `hreflang="en" href="https://www.example.com/contact?hl=en"`)
}

func TestRobots(t *testing.T) {
	robots := Robots("https://www.example.com")
	require.Contains(t, robots, "Disallow: /fragments/")
	require.Contains(t, robots, "Sitemap: https://www.example.com/sitemap.xml")
}
