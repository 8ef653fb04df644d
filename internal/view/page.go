// Package view holds the navigation state of the site: which page is shown,
// whether a case-study overlay is open and whether the mobile menu is expanded.
//
// Every value in this package is owned by a single request (or a single test).
// Nothing here is safe for concurrent use and nothing needs to be.
package view

import "strings"

// Page identifies one top-level view. The set of pages is closed: other
// packages can only use the values declared below, and the zero value is Home.
type Page struct {
	id pageID
}

type pageID uint8

const (
	homeID pageID = iota
	servicesID
	caseStudiesID
	aboutID
	contactID
	privacyID
	cookiesID
	termsID
	pageCount
)

var (
	Home        = Page{id: homeID}
	Services    = Page{id: servicesID}
	CaseStudies = Page{id: caseStudiesID}
	About       = Page{id: aboutID}
	Contact     = Page{id: contactID}
	Privacy     = Page{id: privacyID}
	Cookies     = Page{id: cookiesID}
	Terms       = Page{id: termsID}
)

var slugs = [pageCount]string{
	homeID:        "home",
	servicesID:    "services",
	caseStudiesID: "case-studies",
	aboutID:       "about",
	contactID:     "contact",
	privacyID:     "privacy",
	cookiesID:     "cookies",
	termsID:       "terms",
}

// Pages returns every page in navigation order.
func Pages() []Page {
	out := make([]Page, 0, pageCount)
	for id := pageID(0); id < pageCount; id++ {
		out = append(out, Page{id: id})
	}
	return out
}

// ParsePage maps a slug (or a path such as "/services") to a page.
// The empty string and "/" resolve to Home.
func ParsePage(s string) (Page, bool) {
	s = strings.Trim(strings.ToLower(strings.TrimSpace(s)), "/")
	if s == "" {
		return Home, true
	}
	for id, slug := range slugs {
		if slug == s {
			return Page{id: pageID(id)}, true
		}
	}
	return Page{}, false
}

// String returns the page slug.
func (p Page) String() string { return slugs[p.id] }

// Path returns the URL path the page is served at.
func (p Page) Path() string {
	if p.id == homeID {
		return "/"
	}
	return "/" + slugs[p.id]
}

// IsLegal reports whether the page is one of the legal documents.
func (p Page) IsLegal() bool {
	switch p.id {
	case privacyID, cookiesID, termsID:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (p Page) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
