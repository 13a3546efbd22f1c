// Package tui is the terminal front end: a login screen and a paged leads table.
package tui

import (
	"context"

	"leadsweb/leads"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal front end on the alternate screen
func Run(ctx context.Context, api leads.API, view *leads.View) error {
	m := newAppModel(ctx, api, view)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
