package view

import (
	"errors"
	"fmt"
)

var (
	// ErrCaseNotFound is returned for an index outside the catalogue.
	ErrCaseNotFound = errors.New("view: case study not found")
	// ErrNotOpenable is returned when the index refers to a call-to-action entry.
	ErrNotOpenable = errors.New("view: case study has no detail overlay")
)

// LinkOpener opens an external URL in a new browsing context. Failures are
// not reported back.
type LinkOpener interface {
	OpenExternal(url string)
}

// LinkOpenerFunc adapts a function to LinkOpener.
type LinkOpenerFunc func(url string)

// OpenExternal calls f(url).
func (f LinkOpenerFunc) OpenExternal(url string) { f(url) }

// CaseStudyModal tracks which case study, if any, is shown in the detail
// overlay of the case-studies page.
type CaseStudyModal struct {
	cases    []CaseStudy
	selected int
	open     bool
	nav      Navigator
	opener   LinkOpener
}

// NewCaseStudyModal returns a closed modal over cases. nav is used by
// CloseAndNavigate, opener by Choose on a call-to-action entry.
func NewCaseStudyModal(cases []CaseStudy, nav Navigator, opener LinkOpener) *CaseStudyModal {
	return &CaseStudyModal{cases: cases, nav: nav, opener: opener}
}

// Cases returns the catalogue in display order.
func (m *CaseStudyModal) Cases() []CaseStudy { return m.cases }

// Selected returns the open case study and its index.
func (m *CaseStudyModal) Selected() (StandardCase, int, bool) {
	if !m.open {
		return StandardCase{}, -1, false
	}
	return m.cases[m.selected].(StandardCase), m.selected, true
}

// IsOpen reports whether the overlay is shown.
func (m *CaseStudyModal) IsOpen() bool { return m.open }

// Open shows the overlay for the case study at index i. The state is left
// unchanged when i is out of range or refers to a call-to-action.
func (m *CaseStudyModal) Open(i int) error {
	c, err := m.at(i)
	if err != nil {
		return err
	}
	if _, ok := c.(StandardCase); !ok {
		return fmt.Errorf("open %d: %w", i, ErrNotOpenable)
	}
	m.selected = i
	m.open = true
	return nil
}

// Close hides the overlay. Closing a closed modal does nothing.
func (m *CaseStudyModal) Close() {
	m.open = false
	m.selected = 0
}

// CloseAndNavigate closes the overlay and then navigates to target, so the
// overlay never outlives the page it was opened on.
func (m *CaseStudyModal) CloseAndNavigate(target Page) {
	m.Close()
	if m.nav != nil {
		m.nav.Navigate(target)
	}
}

// Choose handles a click on the card at index i: a call-to-action opens its
// external URL and leaves the overlay as it was, any other entry opens the
// overlay.
func (m *CaseStudyModal) Choose(i int) error {
	c, err := m.at(i)
	if err != nil {
		return err
	}
	if cta, ok := c.(CallToAction); ok {
		if m.opener != nil {
			m.opener.OpenExternal(cta.URL)
		}
		return nil
	}
	return m.Open(i)
}

func (m *CaseStudyModal) at(i int) (CaseStudy, error) {
	if i < 0 || i >= len(m.cases) {
		return nil, fmt.Errorf("case %d: %w", i, ErrCaseNotFound)
	}
	return m.cases[i], nil
}
