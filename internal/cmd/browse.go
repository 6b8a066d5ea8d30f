package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ui"
)

// BrowseCmd starts the TUI application
type BrowseCmd struct {
	Path     string `help:"Directory to open, relative to the repository root" short:"p"`
	Revision string `help:"Revision (changeset) to browse" short:"r"`
}

// Run executes the TUI
func (b *BrowseCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting covdir TUI",
		"revision", b.Revision,
		"path", b.Path,
		"repo", cli.Repo)

	controller := cli.Container.NewFetchController(cli.Repo)
	thresholds := cli.currentSettings().Thresholds()

	p := tea.NewProgram(
		ui.NewModel(controller, thresholds, b.Revision, b.Path),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
