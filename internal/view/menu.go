package view

// Menu is the navigation bar. On narrow layouts its links live in a menu that
// the visitor expands and collapses.
type Menu struct {
	expanded bool
	nav      Navigator
}

// NewMenu returns a collapsed menu that navigates through nav.
func NewMenu(nav Navigator) *Menu {
	return &Menu{nav: nav}
}

// Expanded reports whether the mobile menu is open.
func (m *Menu) Expanded() bool { return m.expanded }

// Toggle opens a collapsed menu and collapses an open one.
func (m *Menu) Toggle() { m.expanded = !m.expanded }

// Select navigates to target and collapses the menu.
func (m *Menu) Select(target Page) {
	if m.nav != nil {
		m.nav.Navigate(target)
	}
	m.expanded = false
}
