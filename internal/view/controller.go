// Package view holds the presentation state of the portfolio: which page is
// shown, whether the compact navigation menu is expanded, and which
// certificate (if any) is enlarged. Renderers read the state and call the
// four transition methods in response to user gestures.
package view

import (
	"fmt"

	"github.com/Achutha2207/portfolio/internal/catalog"
)

// State is a point-in-time copy of a Controller's fields.
type State struct {
	Page        Page
	MenuOpen    bool
	Certificate *catalog.Certificate
}

// HasCertificate reports whether a certificate is selected.
func (s State) HasCertificate() bool { return s.Certificate != nil }

// Controller owns the view state. It is not safe for concurrent use; the
// owning event loop (an HTTP session or a terminal program) serialises calls.
type Controller struct {
	catalog  *catalog.Catalog
	page     Page
	menuOpen bool
	selected int // index into catalog.Certificates, -1 when nothing is selected
}

// New returns a controller in the initial state: Home, menu collapsed, no
// certificate selected. The catalog's certificates are the only ones
// SelectCertificate accepts.
func New(c *catalog.Catalog) *Controller {
	if c == nil {
		c = &catalog.Catalog{}
	}
	return &Controller{catalog: c, page: Home, selected: -1}
}

// NavigateTo shows page p and collapses the menu. The certificate selection
// is left untouched.
func (c *Controller) NavigateTo(p Page) {
	if !p.Valid() {
		panic(fmt.Sprintf("view: NavigateTo called with invalid page %d", int(p)))
	}
	c.page = p
	c.menuOpen = false
}

// ToggleMenu expands or collapses the compact navigation menu.
func (c *Controller) ToggleMenu() {
	c.menuOpen = !c.menuOpen
}

// SelectCertificate enlarges cert. cert must be an unaltered entry of the
// controller's catalog.
func (c *Controller) SelectCertificate(cert catalog.Certificate) {
	if !c.catalog.Contains(cert) {
		panic(fmt.Sprintf("view: certificate %d (%q) is not in the catalog", cert.ID, cert.Title))
	}
	for i := range c.catalog.Certificates {
		if c.catalog.Certificates[i].ID == cert.ID {
			c.selected = i
			return
		}
	}
}

// CloseCertificate clears the selection. Calling it with nothing selected is
// a no-op.
func (c *Controller) CloseCertificate() {
	c.selected = -1
}

func (c *Controller) Page() Page { return c.page }

func (c *Controller) MenuOpen() bool { return c.menuOpen }

// SelectedCertificate returns the enlarged certificate, if any.
func (c *Controller) SelectedCertificate() (catalog.Certificate, bool) {
	if c.selected < 0 {
		return catalog.Certificate{}, false
	}
	return c.catalog.Certificates[c.selected], true
}

// State returns a snapshot that stays valid after further transitions.
func (c *Controller) State() State {
	s := State{Page: c.page, MenuOpen: c.menuOpen}
	if cert, ok := c.SelectedCertificate(); ok {
		s.Certificate = &cert
	}
	return s
}
