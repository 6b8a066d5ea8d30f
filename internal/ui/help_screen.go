package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/theme"
)

// HelpScreen displays keyboard shortcuts and the coverage colour legend
type HelpScreen struct {
	Completed   bool
	content     string         // Pre-built help content
	initialized bool           // Track if viewport has been sized
	keys        KeyMap         // Key bindings to display
	viewport    viewport.Model // Scrollable viewport
}

// renderShortcut renders a single shortcut line with key and description
func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

// renderBinding renders a single shortcut line from a key binding, listing every key
func renderBinding(binding key.Binding) string {
	return renderShortcut(strings.Join(binding.Keys(), "/"), binding.Help().Desc)
}

// buildHelpContent builds the complete help text content using key bindings
func buildHelpContent(keys KeyMap, thresholds domain.Thresholds) string {
	var b strings.Builder

	b.WriteString(theme.HelpGroupStyle.Render("Navigation") + "\n")
	for _, binding := range []key.Binding{keys.Up, keys.Down, keys.Top, keys.Bottom, keys.Open, keys.Parent} {
		b.WriteString(renderBinding(binding))
	}

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Coverage") + "\n")
	b.WriteString(renderBinding(keys.ChangeRevision))
	b.WriteString(renderBinding(keys.Refresh))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Application") + "\n")
	b.WriteString(renderBinding(keys.Help))
	b.WriteString(renderBinding(keys.Quit))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Coverage Levels (read-only)") + "\n")
	b.WriteString(renderShortcut(theme.CoverageStyle(domain.LevelHigh).Render(fmt.Sprintf("≥ %d%%", thresholds.Medium)), "high"))
	b.WriteString(renderShortcut(theme.CoverageStyle(domain.LevelMedium).Render(fmt.Sprintf("%d–%d%%", thresholds.Low, thresholds.Medium-1)), "medium"))
	b.WriteString(renderShortcut(theme.CoverageStyle(domain.LevelLow).Render(fmt.Sprintf("< %d%%", thresholds.Low)), "low"))
	b.WriteString(renderShortcut(theme.CoverageStyle(domain.LevelUnknown).Render(domain.IndeterminateLabel), "no instrumented lines"))

	return b.String()
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys KeyMap, thresholds domain.Thresholds) *HelpScreen {
	vp := viewport.New(0, 0)
	vp.KeyMap.Up.SetKeys("up", "k")
	vp.KeyMap.Down.SetKeys("down", "j")

	return &HelpScreen{
		content:  buildHelpContent(keys, thresholds),
		keys:     keys,
		viewport: vp,
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

// Resize fits the viewport to the terminal
func (h *HelpScreen) Resize(width, height int) {
	// Header: 2 lines, Footer: 2 lines
	viewportHeight := height - 4
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	h.viewport.Width = width
	h.viewport.Height = viewportHeight
	h.viewport.SetContent(h.content)
	h.initialized = true
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.Resize(msg.Width, msg.Height)
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || key.Matches(msg, h.keys.Quit, h.keys.Help) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return h.content
	}

	footer := theme.HelpStyle.Render("Press esc, q or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n\n" + footer
}
