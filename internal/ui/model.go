package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/theme"
)

type uiState int

const (
	stateBrowse uiState = iota
	stateHelp
	stateRevisionForm
)

// lines taken by header, meta panel, table chrome and help bar
const reservedHeight = 16

// Model is the directory browser
type Model struct {
	controller   *FetchController
	cursor       int
	height       int
	help         help.Model
	helpScreen   *HelpScreen
	keys         KeyMap
	pendingPath  string
	pendingRev   string
	revisionForm *RevisionForm
	selectName   string // entry to put the cursor on once the next listing arrives
	spinner      spinner.Model
	state        uiState
	thresholds   domain.Thresholds
	width        int
}

// NewModel creates the browser. The view mounts on (revision, path) in Init.
func NewModel(controller *FetchController, thresholds domain.Thresholds, revision, path string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorSpinner)

	return &Model{
		controller:  controller,
		help:        help.New(),
		keys:        NewKeyMap(),
		pendingPath: domain.NormalizeDirPath(path),
		pendingRev:  strings.TrimSpace(revision),
		spinner:     s,
		state:       stateBrowse,
		thresholds:  thresholds,
		width:       80,
	}
}

// State exposes the view state for callers that embed the model
func (m *Model) State() ViewState {
	return m.controller.State()
}

func (m *Model) Init() tea.Cmd {
	req, ok := m.controller.Mount(m.pendingRev, m.pendingPath)
	if !ok {
		return nil
	}
	return m.startFetch(req)
}

func (m *Model) startFetch(req FetchRequest) tea.Cmd {
	logging.Logger.Debug("Starting coverage fetch",
		"revision", req.Revision,
		"path", req.Path,
		"generation", req.Generation)
	return tea.Batch(m.spinner.Tick, StartCoverageFetcher(m.controller, req))
}

// navigate moves the view and starts a fetch when the pair changed
func (m *Model) navigate(revision, path string) tea.Cmd {
	req, ok := m.controller.SetView(revision, path)
	m.cursor = 0
	if !ok {
		return nil
	}
	return m.startFetch(req)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.helpScreen != nil {
			m.helpScreen.Resize(msg.Width, msg.Height-2)
		}
		return m, nil

	case spinner.TickMsg:
		if m.controller.State().Phase != PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CoverageFetchedMsg:
		m.handleFetched(msg)
		return m, nil
	}

	switch m.state {
	case stateHelp:
		return m.updateHelp(msg)
	case stateRevisionForm:
		return m.updateRevisionForm(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m *Model) handleFetched(msg CoverageFetchedMsg) {
	if msg.Result.Request.Generation != m.controller.Generation() {
		// Apply drops it too; keep the cursor where it is
		_ = m.controller.Apply(context.Background(), msg.Result)
		return
	}

	if err := m.controller.Apply(context.Background(), msg.Result); err != nil {
		// Already shown in the meta panel and reported
		logging.Logger.Debug("Coverage fetch failed", "error", err)
	}

	m.cursor = 0
	if m.selectName != "" {
		for i, r := range m.controller.State().Coverage {
			if r.IsDirectory && r.Name == m.selectName {
				m.cursor = i
				break
			}
		}
		m.selectName = ""
	}
}

func (m *Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	state := m.controller.State()
	count := len(state.Coverage)

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.helpScreen = NewHelpScreen(m.keys, m.thresholds)
		if m.height > 0 {
			m.helpScreen.Resize(m.width, m.height-2)
		}
		m.state = stateHelp
		return m, m.helpScreen.Init()

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(keyMsg, m.keys.Bottom):
		if count > 0 {
			m.cursor = count - 1
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Open):
		if m.cursor >= count {
			return m, nil
		}
		record := state.Coverage[m.cursor]
		if !record.IsDirectory {
			return m, nil
		}
		return m, m.navigate(state.Revision, domain.EntryPath(state.Path, record))

	case key.Matches(keyMsg, m.keys.Parent):
		if state.Path == "" {
			return m, nil
		}
		m.selectName = lastSegment(state.Path)
		return m, m.navigate(state.Revision, domain.ParentPath(state.Path))

	case key.Matches(keyMsg, m.keys.Refresh):
		req, ok := m.controller.Refresh()
		m.cursor = 0
		if !ok {
			return m, nil
		}
		return m, m.startFetch(req)

	case key.Matches(keyMsg, m.keys.ChangeRevision):
		m.revisionForm = NewRevisionForm(state.Revision, state.Path)
		m.state = stateRevisionForm
		return m, m.revisionForm.Init()
	}

	return m, nil
}

func (m *Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.helpScreen.Update(msg)
	if m.helpScreen.Completed {
		m.helpScreen = nil
		m.state = stateBrowse
		return m, nil
	}
	return m, cmd
}

func (m *Model) updateRevisionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.revisionForm.Update(msg)
	if !m.revisionForm.Completed {
		return m, cmd
	}

	result := m.revisionForm.Result()
	m.revisionForm = nil
	m.state = stateBrowse
	if result.Cancelled {
		return m, nil
	}
	return m, m.navigate(result.Revision, result.Path)
}

func (m *Model) View() string {
	if m.state == stateHelp && m.helpScreen != nil {
		return renderHeader() + "\n\n" + m.helpScreen.View()
	}
	if m.state == stateRevisionForm && m.revisionForm != nil {
		return renderHeader() + "\n\n" + m.revisionForm.View()
	}

	state := m.controller.State()

	var b strings.Builder
	b.WriteString(renderHeader())
	b.WriteString("\n\n")
	b.WriteString(renderMetaPanel(state, m.spinner.View(), m.width))
	b.WriteString("\n")

	// The table only renders when the listing for this view is present
	if state.Err == "" && state.Coverage != nil {
		b.WriteString(directoryTable{
			cursor:     m.cursor,
			height:     m.tableHeight(),
			records:    state.Coverage,
			thresholds: m.thresholds,
			width:      m.width,
		}.View())
		b.WriteString("\n")
	}

	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) tableHeight() int {
	if m.height == 0 {
		return 0 // unknown terminal size: show everything
	}
	height := m.height - reservedHeight
	if height < 3 {
		return 3
	}
	return height
}

// lastSegment returns the final directory name of a prefix like "a/b/"
func lastSegment(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
