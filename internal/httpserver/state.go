package httpserver

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	custommw "github.com/Elsevier11/bbt-consulting-sito/internal/middleware"
	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

var (
	homeIcons     = []string{"target", "users", "database"}
	servicesIcons = []string{"compass", "brain-circuit", "bar-chart-3", "users"}
	contactIcons  = []string{"calendar", "mail", "target"}
)

// requestState is the page shell, menu and case-study modal of a single
// request. The browser owns the state between requests; every handler
// rebuilds it from the URL and then applies one interaction.
type requestState struct {
	lang   string
	static bool
	htmx   custommw.HTMXInfo

	shell *view.Shell
	menu  *view.Menu
	modal *view.CaseStudyModal

	// external is the URL handed to the link opener, if any.
	external string
}

// hxScroller asks htmx to scroll to the top after swapping the content area.
// Full page loads start at the top anyway.
type hxScroller struct {
	w    http.ResponseWriter
	info custommw.HTMXInfo
}

func (s hxScroller) ScrollTop() {
	if s.info.Partial("main") {
		s.w.Header().Set("HX-Reswap", "innerHTML show:window:top")
	}
}

func (s *site) newState(w http.ResponseWriter, r *http.Request) *requestState {
	st := &requestState{
		lang:   custommw.Lang(r, s.info.DefaultLocale),
		static: custommw.IsExport(r.Context()),
		htmx:   custommw.HTMXInfoFromContext(r.Context()),
	}
	st.shell = view.NewShell(s.views(st), hxScroller{w: w, info: st.htmx})
	st.menu = view.NewMenu(st.shell)
	st.modal = view.NewCaseStudyModal(s.catalog.Cases(st.lang), st.shell, view.LinkOpenerFunc(func(url string) {
		st.external = url
	}))
	return st
}

// views returns the content component of every page for st.
func (s *site) views(st *requestState) view.Views {
	base := PageData{Lang: st.lang, Static: st.static, BookingURL: s.info.BookingURL}
	with := func(icons []string) PageData {
		d := base
		d.Icons = icons
		return d
	}
	views := view.Views{
		view.Home:        s.engine.Component("page/home", with(homeIcons)),
		view.Services:    s.engine.Component("page/services", with(servicesIcons)),
		view.CaseStudies: s.engine.Component("page/case-studies", CaseStudiesData{PageData: base, Cards: s.cards(st)}),
		view.About:       s.engine.Component("page/about", base),
		view.Contact:     s.engine.Component("page/contact", with(contactIcons)),
	}
	for _, p := range view.Pages() {
		if p.IsLegal() {
			views[p] = s.legalView(p, base)
		}
	}
	return views
}

// legalView fetches the document only when the view is rendered.
func (s *site) legalView(p view.Page, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc, err := s.content.Legal(ctx, p.String(), data.Lang)
		if err != nil {
			return err
		}
		return s.engine.Execute(w, "page/legal", LegalData{PageData: data, Slug: p.String(), Doc: doc})
	})
}

func (s *site) cards(st *requestState) []CardData {
	cases := s.catalog.Cases(st.lang)
	out := make([]CardData, 0, len(cases))
	for i, c := range cases {
		card := CardData{Card: c.Summary(), Index: i, Href: caseHref(i)}
		if cta, ok := c.(view.CallToAction); ok {
			card.CTA = true
			if st.static {
				card.Href = cta.URL
			}
		}
		out = append(out, card)
	}
	return out
}

// modalData returns the overlay of the open case study, if any.
func (st *requestState) modalData() (ModalData, bool) {
	c, idx, ok := st.modal.Selected()
	if !ok {
		return ModalData{}, false
	}
	d := ModalData{
		Lang:      st.lang,
		Static:    st.static,
		Index:     idx,
		Case:      c,
		CloseHref: view.CaseStudies.Path(),
		DemoHref:  caseHref(idx) + "/demo",
	}
	if st.static {
		d.DemoHref = view.Contact.Path()
	}
	return d, true
}

func caseHref(i int) string {
	return view.CaseStudies.Path() + "/" + strconv.Itoa(i)
}
