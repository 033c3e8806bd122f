package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/getaltair/altair-sub003/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, owner string, out io.Writer) error {
	m := newBoardModel(ctx, svc, owner)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
