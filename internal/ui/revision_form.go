package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/covdir/internal/domain"
)

// RevisionFormResult contains the view requested through the form
type RevisionFormResult struct {
	Cancelled bool
	Path      string
	Revision  string
}

// RevisionForm is a Bubble Tea component for jumping to another revision/path
type RevisionForm struct {
	Completed bool
	form      *huh.Form
	result    RevisionFormResult
}

// NewRevisionForm creates a form pre-filled with the current view
func NewRevisionForm(currentRevision, currentPath string) *RevisionForm {
	rf := &RevisionForm{
		result: RevisionFormResult{
			Path:     currentPath,
			Revision: currentRevision,
		},
	}

	rf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Revision").
				Description("Changeset to browse").
				Value(&rf.result.Revision).
				Placeholder("e.g. 4f3d1a2b9c07").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("revision required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Path").
				Description("Directory within the revision (empty for root)").
				Value(&rf.result.Path),
		),
	)

	return rf
}

func (rf *RevisionForm) Init() tea.Cmd {
	return rf.form.Init()
}

func (rf *RevisionForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Escape or Ctrl+C to cancel
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			rf.result.Cancelled = true
			rf.Completed = true
			return rf, nil
		}
	}

	form, cmd := rf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		rf.form = f
	}

	if rf.form.State == huh.StateCompleted {
		rf.Completed = true
		rf.result.Revision = strings.TrimSpace(rf.result.Revision)
		rf.result.Path = domain.NormalizeDirPath(rf.result.Path)
		return rf, nil
	}

	if rf.form.State == huh.StateAborted {
		rf.result.Cancelled = true
		rf.Completed = true
		return rf, nil
	}

	return rf, cmd
}

func (rf *RevisionForm) View() string {
	if rf.form != nil {
		return rf.form.View()
	}
	return ""
}

// Result returns the form result
func (rf *RevisionForm) Result() RevisionFormResult {
	return rf.result
}
