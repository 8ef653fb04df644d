package httpserver

import (
	"html/template"

	"github.com/Elsevier11/bbt-consulting-sito/internal/cms"
	"github.com/Elsevier11/bbt-consulting-sito/internal/nav"
	"github.com/Elsevier11/bbt-consulting-sito/internal/seo"
	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

// Document is the data of the "layout" and "partial" templates.
type Document struct {
	Lang        string
	Static      bool
	Page        string
	Meta        seo.Meta
	JSONLD      []template.JS
	Header      HeaderData
	Breadcrumbs []nav.Crumb
	Content     template.HTML
	Modal       template.HTML
	Footer      FooterData
}

type HeaderData struct {
	Lang       string
	Static     bool
	OOB        bool
	Items      []nav.RenderedItem
	Locales    []LocaleLink
	BookingURL string
	Menu       MenuData
}

// MenuData drives the "menu" template. Path is the page the menu is shown
// on, used by the no-script toggle link.
type MenuData struct {
	Lang       string
	Static     bool
	Expanded   bool
	Page       string
	Path       string
	Items      []nav.RenderedItem
	BookingURL string
}

type LocaleLink struct {
	Lang   string
	Label  string
	Href   string
	Active bool
}

type FooterData struct {
	Lang   string
	Static bool
	Groups []nav.Group
	Year   int
}

// PageData is shared by the content views.
type PageData struct {
	Lang       string
	Static     bool
	BookingURL string
	Icons      []string
}

type CaseStudiesData struct {
	PageData
	Cards []CardData
}

// CardData is one tile of the case-study grid.
type CardData struct {
	view.Card
	Index int
	CTA   bool
	Href  string
}

type LegalData struct {
	PageData
	Slug string
	Doc  cms.LegalPage
}

type ModalData struct {
	Lang      string
	Static    bool
	Index     int
	Case      view.StandardCase
	CloseHref string
	DemoHref  string
}
