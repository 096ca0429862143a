package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"goalquest/internal/engine"
)

// Run starts the full-screen dashboard.
func Run(ctx context.Context, svc *engine.Service, userID int64) error {
	p := tea.NewProgram(newBoardModel(ctx, svc, userID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
