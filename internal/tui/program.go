package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/terracarta/terracarta/internal/domain"
)

// Run starts the interactive browser for a workspace. It blocks until the
// user quits or the controller requires authentication, in which case it
// returns domain.ErrAuthRequired with the navigation intent already
// persisted.
func Run(ctx context.Context, workspaceID, path string, deps ModelDependencies) error {
	model := NewModel(ctx, workspaceID, path, deps)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := program.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(*Model); ok && m.loadFailed && m.authRequired {
		return domain.ErrAuthRequired
	}
	return nil
}
