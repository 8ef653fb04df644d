// Package nav builds the navigation bar, footer and breadcrumb models.
package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

// Item is a link to an internal page.
type Item struct {
	Page     view.Page
	LabelKey string // i18n key, e.g. "page.services"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Page     view.Page
	Href     string
	LabelKey string
	Active   bool
}

// Link is a footer entry. External links carry an absolute Href and open in
// a new browsing context.
type Link struct {
	Page     view.Page
	Href     string
	LabelKey string
	External bool
}

// Group is a titled column of footer links.
type Group struct {
	TitleKey string
	Links    []Link
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation, in display order.
var Main = []Item{
	{Page: view.Home, LabelKey: labelKey(view.Home)},
	{Page: view.Services, LabelKey: labelKey(view.Services)},
	{Page: view.CaseStudies, LabelKey: labelKey(view.CaseStudies)},
	{Page: view.About, LabelKey: labelKey(view.About)},
	{Page: view.Contact, LabelKey: labelKey(view.Contact)},
}

// LabelKey returns the i18n key naming p.
func LabelKey(p view.Page) string { return labelKey(p) }

func labelKey(p view.Page) string { return "page." + p.String() }

// Build renders navigation items with the active state of current.
func Build(current view.Page) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Page:     it.Page,
			Href:     it.Page.Path(),
			LabelKey: it.LabelKey,
			Active:   it.Page == current,
		})
	}
	return items
}

// Footer returns the footer link groups. partnerURL is the external partner
// portal; it is omitted when empty.
func Footer(partnerURL string) []Group {
	navigation := Group{TitleKey: "footer.navigation"}
	for _, it := range Main {
		navigation.Links = append(navigation.Links, Link{Page: it.Page, Href: it.Page.Path(), LabelKey: it.LabelKey})
	}
	legal := Group{TitleKey: "footer.legal"}
	for _, p := range view.Pages() {
		if p.IsLegal() {
			legal.Links = append(legal.Links, Link{Page: p, Href: p.Path(), LabelKey: labelKey(p)})
		}
	}
	if partnerURL = strings.TrimSpace(partnerURL); partnerURL != "" {
		legal.Links = append(legal.Links, Link{Href: partnerURL, LabelKey: "footer.partner", External: true})
	}
	return []Group{navigation, legal}
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - Known pages use their label keys
// - Deeper segments use a title-cased segment in lang
func Breadcrumbs(currentPath, lang string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: labelKey(view.Home), Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean("/" + strings.TrimPrefix(currentPath, "/"))
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	title := titler(lang)

	top := Crumb{Href: "/" + parts[0], Label: title.String(strings.ReplaceAll(parts[0], "-", " ")), Active: len(parts) == 1}
	if p, ok := view.ParsePage(parts[0]); ok {
		top.LabelKey = labelKey(p)
	}
	crumbs = append(crumbs, top)

	href := top.Href
	for i := 1; i < len(parts); i++ {
		href += "/" + parts[i]
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  title.String(strings.NewReplacer("-", " ", "_", " ").Replace(parts[i])),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func titler(lang string) cases.Caser {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return cases.Title(tag)
}
