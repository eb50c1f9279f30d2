// Package tui renders the portfolio in a terminal. The Bubble Tea update
// loop is the only goroutine touching the view controller, so it owns it
// outright.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Achutha2207/portfolio/internal/catalog"
	"github.com/Achutha2207/portfolio/internal/view"
)

type Model struct {
	catalog *catalog.Catalog
	ctrl    *view.Controller
	keys    keyMap
	help    help.Model

	cursor int // highlighted certificate on the Certificates page
	width  int
}

func New(c *catalog.Catalog) Model {
	return Model{
		catalog: c,
		ctrl:    view.New(c),
		keys:    newKeyMap(),
		help:    help.New(),
		width:   wideLayout,
	}
}

// State exposes the controller's state, mainly for tests.
func (m Model) State() view.State { return m.ctrl.State() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		for i, b := range m.keys.Pages {
			if key.Matches(msg, b) {
				m.ctrl.NavigateTo(view.Pages()[i])
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Next):
			m.ctrl.NavigateTo(m.ctrl.Page().Next())
		case key.Matches(msg, m.keys.Prev):
			m.ctrl.NavigateTo(m.ctrl.Page().Prev())
		case key.Matches(msg, m.keys.Menu):
			m.ctrl.ToggleMenu()
		case key.Matches(msg, m.keys.Close):
			m.ctrl.CloseCertificate()
		case m.ctrl.Page() == view.Certificates && !m.ctrl.State().HasCertificate():
			// Cursor keys only act on the list while no modal covers it.
			m.updateCertificates(msg)
		}
	}
	return m, nil
}

func (m *Model) updateCertificates(msg tea.KeyMsg) {
	n := len(m.catalog.Certificates)
	if n == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + n - 1) % n
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(msg, m.keys.Select):
		m.ctrl.SelectCertificate(m.catalog.Certificates[m.cursor])
	}
}

func (m Model) View() string {
	st := m.ctrl.State()

	var b strings.Builder
	b.WriteString(m.header(st))
	b.WriteString("\n\n")
	if st.Certificate != nil {
		b.WriteString(m.modal(*st.Certificate))
	} else {
		b.WriteString(m.content(st.Page))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(strings.Join(m.catalog.Profile.Footer, "\n")))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) header(st view.State) string {
	name := titleStyle.Render(m.catalog.Profile.Name)
	if m.width >= wideLayout {
		return lipgloss.JoinHorizontal(lipgloss.Top, name, "   ", tabs(st.Page))
	}

	toggle := mutedStyle.Render("[m] ☰")
	if st.MenuOpen {
		toggle = mutedStyle.Render("[m] ✕")
	}
	out := name + "  " + toggle
	if st.MenuOpen {
		var items []string
		for i, p := range view.Pages() {
			cursor := boxBlank
			label := fmt.Sprintf("%d %s", i+1, p.Label())
			if p == st.Page {
				cursor = boxCursor
				label = cursorStyle.Render(label)
			}
			items = append(items, cursor+" "+label)
		}
		out += "\n" + strings.Join(items, "\n")
	}
	return out
}

func tabs(current view.Page) string {
	var parts []string
	for i, p := range view.Pages() {
		label := fmt.Sprintf("%d %s", i+1, p.Label())
		if p == current {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) modal(cert catalog.Certificate) string {
	lines := []string{
		titleStyle.Render(cert.Title),
		mutedStyle.Render(cert.Issuer + " • " + cert.Date),
		"",
		"Image: " + cert.Image,
		"",
		mutedStyle.Render("esc to close"),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}
