package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// CoverageFetchedMsg is sent when a FetchRequest has completed, successfully or not
type CoverageFetchedMsg struct {
	Result FetchResult
}

// StartCoverageFetcher runs request off the event loop.
// Returns a tea.Cmd that will send CoverageFetchedMsg; the model applies it.
func StartCoverageFetcher(controller *FetchController, request FetchRequest) tea.Cmd {
	return func() tea.Msg {
		return CoverageFetchedMsg{
			Result: controller.Fetch(context.Background(), request),
		}
	}
}
