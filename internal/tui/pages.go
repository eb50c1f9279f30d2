package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Achutha2207/portfolio/internal/view"
)

var pageViews = map[view.Page]func(Model) string{
	view.Home:         Model.homeView,
	view.Projects:     Model.projectsView,
	view.Resume:       Model.resumeView,
	view.Certificates: Model.certificatesView,
	view.Contact:      Model.contactView,
}

// content renders page p, falling back to the about page.
func (m Model) content(p view.Page) string {
	render, ok := pageViews[p]
	if !ok {
		render = pageViews[view.Home]
	}
	return render(m)
}

func (m Model) textWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return wideLayout - 4
}

func (m Model) homeView() string {
	p := m.catalog.Profile
	body := bodyStyle.Width(m.textWidth()).Render(strings.TrimSpace(p.About))
	lines := []string{
		"Hey, I'm " + accentStyle.Render(p.Name),
	}
	if p.Location != "" {
		lines = append(lines, mutedStyle.Render(p.Location))
	}
	lines = append(lines, "", body)
	if p.Tagline != "" {
		lines = append(lines, "", accentStyle.Render(p.Tagline))
	}
	return strings.Join(lines, "\n")
}

func (m Model) projectsView() string {
	cards := []string{titleStyle.Render("My Projects")}
	if gh := m.catalog.Profile.GitHub; gh != "" {
		cards = append(cards, mutedStyle.Render("All projects: "+gh))
	}
	for _, p := range m.catalog.Projects {
		card := strings.Join([]string{
			accentStyle.Render(p.Name),
			bodyStyle.Width(m.textWidth() - 4).Render(p.Description),
			mutedStyle.Render(p.Link),
		}, "\n")
		cards = append(cards, cardStyle.Render(card))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) resumeView() string {
	p := m.catalog.Profile
	return strings.Join([]string{
		titleStyle.Render("Resume"),
		"Download my resume to learn more about my experience and qualifications.",
		"",
		cardStyle.Render(fmt.Sprintf("%s's Resume\n%s", p.Name, accentStyle.Render(p.Resume))),
	}, "\n")
}

func (m Model) certificatesView() string {
	lines := []string{titleStyle.Render("Certificates"), ""}
	for i, c := range m.catalog.Certificates {
		cursor := boxBlank
		title := c.Title
		if i == m.cursor {
			cursor = cursorStyle.Render(boxCursor)
			title = cursorStyle.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", cursor, title, mutedStyle.Render(c.Issuer+" • Issued: "+c.Date)))
	}
	if len(m.catalog.Certificates) == 0 {
		lines = append(lines, mutedStyle.Render("No certificates yet."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) contactView() string {
	p := m.catalog.Profile
	lines := []string{titleStyle.Render("Get in Touch"), ""}
	if p.Email != "" {
		lines = append(lines, "Email   "+accentStyle.Render(p.Email))
	}
	if p.Phone != "" {
		lines = append(lines, "Phone   "+greenStyle.Render(p.Phone))
	}
	if p.GitHub != "" {
		lines = append(lines, "GitHub  "+accentStyle.Render(p.GitHub))
	}
	return strings.Join(lines, "\n")
}
