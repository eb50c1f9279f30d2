package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Achutha2207/portfolio/internal/catalog"
)

// Run shows the portfolio full-screen until the user quits.
func Run(c *catalog.Catalog) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
