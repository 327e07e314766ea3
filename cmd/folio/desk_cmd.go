package main

import (
	"fmt"

	"termfolio/cmd/folio/desk"
	"termfolio/cmd/folio/ui"
	"termfolio/internal/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runDesk opens the full-screen desktop.
func runDesk(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	conv, err := newConversation(cmd.Context(), p)
	if err != nil {
		return err
	}

	m := desk.New(desk.Options{
		Session:      terminal.NewSession(newInterpreter(p)),
		Conversation: conv,
		Styles:       ui.DefaultStyles(),
	})

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(desk.Model); ok {
		fm.Session().Close()
	}
	if err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
