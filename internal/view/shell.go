package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Navigator is the capability to change the current page. The shell hands it
// to the navigation bar, the footer and content views that need to move the
// visitor elsewhere.
type Navigator interface {
	Navigate(target Page)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target Page)

// Navigate calls f(target).
func (f NavigatorFunc) Navigate(target Page) { f(target) }

// Scroller performs the scroll-to-top effect that follows a navigation.
type Scroller interface {
	ScrollTop()
}

// Views maps each page to the component rendered in the content area.
type Views map[Page]templ.Component

// Shell owns the current page and renders the view associated with it.
type Shell struct {
	current  Page
	views    Views
	scroller Scroller
}

// NewShell returns a shell showing Home. A nil scroller disables the scroll
// effect.
func NewShell(views Views, scroller Scroller) *Shell {
	return &Shell{current: Home, views: views, scroller: scroller}
}

// Current returns the page being shown.
func (s *Shell) Current() Page { return s.current }

// Navigate makes target the current page and scrolls to the top.
func (s *Shell) Navigate(target Page) {
	s.current = target
	if s.scroller != nil {
		s.scroller.ScrollTop()
	}
}

// Active returns the view for the current page. ok is false when no view is
// registered for it, in which case nothing is rendered.
func (s *Shell) Active() (templ.Component, bool) {
	c, ok := s.views[s.current]
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

// Render writes the active view to w.
func (s *Shell) Render(ctx context.Context, w io.Writer) error {
	c, ok := s.Active()
	if !ok {
		return nil
	}
	return c.Render(ctx, w)
}
