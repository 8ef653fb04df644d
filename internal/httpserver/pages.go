package httpserver

import (
	"context"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Elsevier11/bbt-consulting-sito/internal/nav"
	"github.com/Elsevier11/bbt-consulting-sito/internal/observability"
	"github.com/Elsevier11/bbt-consulting-sito/internal/render"
	"github.com/Elsevier11/bbt-consulting-sito/internal/seo"
	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

// page serves "/" and "/{page}". A no-script visitor opens the mobile menu
// with ?menu=open.
func (s *site) page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "page")
	p, ok := view.ParsePage(slug)
	if !ok {
		s.notFound(w, r)
		return
	}
	if slug != "" && p == view.Home {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
		return
	}

	st := s.newState(w, r)
	if r.URL.Query().Get("menu") == "open" && !st.static {
		st.shell.Navigate(p)
		st.menu.Toggle()
	} else {
		st.menu.Select(p)
	}
	s.respond(w, r, st, p.Path())
}

// caseStudy serves the case-studies page with the overlay of one entry open.
// The call-to-action entry redirects to its external page instead.
func (s *site) caseStudy(w http.ResponseWriter, r *http.Request) {
	idx, ok := caseIndex(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	st := s.newState(w, r)
	st.menu.Select(view.CaseStudies)
	if err := st.modal.Choose(idx); err != nil {
		s.notFound(w, r)
		return
	}
	if st.external != "" {
		http.Redirect(w, r, st.external, http.StatusSeeOther)
		return
	}

	if st.htmx.Partial("modal") {
		data, _ := st.modalData()
		s.serve(w, r, s.engine.Component("modal", data), http.StatusOK)
		return
	}
	s.respond(w, r, st, caseHref(idx))
}

// caseStudyDemo closes the overlay and moves to the contact page.
func (s *site) caseStudyDemo(w http.ResponseWriter, r *http.Request) {
	idx, ok := caseIndex(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	st := s.newState(w, r)
	st.menu.Select(view.CaseStudies)
	if err := st.modal.Open(idx); err != nil {
		s.notFound(w, r)
		return
	}
	st.modal.CloseAndNavigate(view.Contact)

	if !st.htmx.Partial("main") {
		http.Redirect(w, r, view.Contact.Path(), http.StatusSeeOther)
		return
	}
	w.Header().Set("HX-Push-Url", view.Contact.Path())
	s.respond(w, r, st, view.Contact.Path())
}

// closeCaseStudy empties the modal slot.
func (s *site) closeCaseStudy(w http.ResponseWriter, r *http.Request) {
	st := s.newState(w, r)
	st.menu.Select(view.CaseStudies)
	st.modal.Close()
	w.Header().Set("HX-Push-Url", view.CaseStudies.Path())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}

// menuFragment toggles the mobile menu. The client sends the state it shows.
func (s *site) menuFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, ok := view.ParsePage(q.Get("page"))
	if !ok {
		p = view.Home
	}
	st := s.newState(w, r)
	st.menu.Select(p)
	if q.Get("expanded") == "true" {
		st.menu.Toggle()
	}
	st.menu.Toggle()
	s.serve(w, r, s.engine.Component("menu", s.menuData(st, nav.Build(p))), http.StatusOK)
}

func (s *site) notFound(w http.ResponseWriter, r *http.Request) {
	st := s.newState(w, r)
	doc := s.frame(st, r.URL.Path)
	for i := range doc.Header.Items {
		doc.Header.Items[i].Active = false
	}
	doc.Header.Menu.Items = doc.Header.Items
	doc.Page = "notfound"
	doc.Meta = seo.NotFound(s.seo, s.bundle, st.lang)

	content, err := render.HTML(r.Context(), s.engine.Component("page/notfound", PageData{Lang: st.lang, Static: st.static, BookingURL: s.info.BookingURL}))
	if err != nil {
		s.renderError(r, err).ServeHTTP(w, r)
		return
	}
	doc.Content = content
	name := s.documentTemplate(st, &doc)
	s.serve(w, r, s.engine.Component(name, doc), http.StatusNotFound)
}

func (s *site) sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := seo.Sitemap(s.seo, view.Pages(), s.started)
	if err != nil {
		s.renderError(r, err).ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *site) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.Robots(s.info.BaseURL)))
}

// respond renders the current view of st, as a whole document or as the
// htmx partial for the content area.
func (s *site) respond(w http.ResponseWriter, r *http.Request, st *requestState, path string) {
	doc, err := s.document(r.Context(), st, path)
	if err != nil {
		s.renderError(r, err).ServeHTTP(w, r)
		return
	}
	name := s.documentTemplate(st, &doc)
	s.serve(w, r, s.engine.Component(name, doc), http.StatusOK)
}

// documentTemplate picks the template for doc and marks the header for an
// out-of-band swap when only the content area is replaced.
func (s *site) documentTemplate(st *requestState, doc *Document) string {
	if st.htmx.Partial("main") {
		doc.Header.OOB = true
		return "partial"
	}
	return "layout"
}

func (s *site) serve(w http.ResponseWriter, r *http.Request, c templ.Component, status int) {
	templ.Handler(c,
		templ.WithStatus(status),
		templ.WithErrorHandler(s.renderError),
	).ServeHTTP(w, r)
}

func (s *site) renderError(r *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.FromContext(r.Context()).Error("render failed",
			zap.Error(err),
			zap.String("path", observability.SanitizePath(r.URL.Path)),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	})
}

// document assembles the layout data for the current page of st.
func (s *site) document(ctx context.Context, st *requestState, path string) (Document, error) {
	p := st.shell.Current()
	doc := s.frame(st, path)
	doc.Page = p.String()
	doc.Meta = seo.Build(s.seo, s.bundle, p, path, st.lang)

	content, err := render.HTML(ctx, st.shell)
	if err != nil {
		return Document{}, err
	}
	doc.Content = content

	crumbs := nav.Breadcrumbs(path, st.lang)
	if data, ok := st.modalData(); ok {
		modal, err := render.HTML(ctx, s.engine.Component("modal", data))
		if err != nil {
			return Document{}, err
		}
		doc.Modal = modal
		last := &crumbs[len(crumbs)-1]
		last.LabelKey, last.Label = "", data.Case.Title
		doc.Meta.Title = data.Case.Title + " | " + s.info.Name
		doc.Meta.OG.Title = doc.Meta.Title
	}
	if len(crumbs) > 1 {
		doc.Breadcrumbs = crumbs
		doc.JSONLD = append(doc.JSONLD, template.JS(seo.JSON(seo.BreadcrumbList(s.breadcrumbItems(st.lang, crumbs)))))
	}
	return doc, nil
}

// frame returns the parts of the document shared by every page.
func (s *site) frame(st *requestState, path string) Document {
	items := nav.Build(st.shell.Current())
	header := HeaderData{
		Lang:       st.lang,
		Static:     st.static,
		Items:      items,
		BookingURL: s.info.BookingURL,
		Menu:       s.menuData(st, items),
	}
	if !st.static && len(s.bundle.Supported()) > 1 {
		for _, l := range s.bundle.Supported() {
			header.Locales = append(header.Locales, LocaleLink{
				Lang:   l,
				Label:  strings.ToUpper(l),
				Href:   path + "?hl=" + l,
				Active: l == st.lang,
			})
		}
	}

	base := s.info.BaseURL
	org := seo.Organization(s.info.Name, s.bundle.T(st.lang, "brand.company"), seo.Absolute(base, "/"), seo.Absolute(base, "/static/img/logo.svg"), "", nil)
	return Document{
		Lang:   st.lang,
		Static: st.static,
		JSONLD: []template.JS{
			template.JS(seo.JSON(org)),
			template.JS(seo.JSON(seo.WebSite(s.info.Name, seo.Absolute(base, "/"), st.lang))),
		},
		Header: header,
		Footer: FooterData{
			Lang:   st.lang,
			Static: st.static,
			Groups: nav.Footer(s.info.PartnerURL),
			Year:   time.Now().Year(),
		},
	}
}

func (s *site) menuData(st *requestState, items []nav.RenderedItem) MenuData {
	p := st.shell.Current()
	return MenuData{
		Lang:       st.lang,
		Static:     st.static,
		Expanded:   st.menu.Expanded(),
		Page:       p.String(),
		Path:       p.Path(),
		Items:      items,
		BookingURL: s.info.BookingURL,
	}
}

func (s *site) breadcrumbItems(lang string, crumbs []nav.Crumb) []seo.BreadcrumbItem {
	out := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = s.bundle.T(lang, c.LabelKey)
		}
		out = append(out, seo.BreadcrumbItem{Name: name, Item: seo.LocalizedURL(s.seo, c.Href, lang)})
	}
	return out
}

func caseIndex(r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
