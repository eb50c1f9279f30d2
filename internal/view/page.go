package view

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPage is returned by ParsePage for names outside the five views.
var ErrUnknownPage = errors.New("unknown page")

// Page identifies one of the informational views of the portfolio.
type Page int

const (
	Home Page = iota
	Projects
	Resume
	Certificates
	Contact
)

var pageNames = [...]string{
	Home:         "home",
	Projects:     "projects",
	Resume:       "resume",
	Certificates: "certificates",
	Contact:      "contact",
}

var pageLabels = [...]string{
	Home:         "About Me",
	Projects:     "Projects",
	Resume:       "Resume",
	Certificates: "Certificates",
	Contact:      "Contact",
}

// Pages lists every page in navigation order.
func Pages() []Page {
	return []Page{Home, Projects, Resume, Certificates, Contact}
}

// Valid reports whether p is one of the five defined pages.
func (p Page) Valid() bool {
	return p >= Home && p <= Contact
}

// String returns the page's URL-safe name, e.g. "projects".
func (p Page) String() string {
	if !p.Valid() {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pageNames[p]
}

// Label is the human readable navigation label.
func (p Page) Label() string {
	if !p.Valid() {
		return pageLabels[Home]
	}
	return pageLabels[p]
}

// Next and Prev cycle through Pages, wrapping at either end.
func (p Page) Next() Page { return Page((int(p) + 1) % len(pageNames)) }

func (p Page) Prev() Page { return Page((int(p) + len(pageNames) - 1) % len(pageNames)) }

// ParsePage maps a page name to its Page. Matching ignores case and
// surrounding whitespace.
func ParsePage(name string) (Page, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range pageNames {
		if n == name {
			return Page(i), nil
		}
	}
	return Home, fmt.Errorf("%w: %q", ErrUnknownPage, name)
}
