package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	activeTabStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)

	footerStyle = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// wideLayout is the width at which the tab bar is always shown; narrower
// terminals get the collapsible menu instead.
const wideLayout = 80

const (
	boxCursor = "›"
	boxBlank  = " "
)
