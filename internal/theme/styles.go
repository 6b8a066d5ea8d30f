package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/covdir/internal/domain"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// Metadata panel styles
var (
	MetaLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MetaPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	MetaValueStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	LoadedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorSpinner)
)

// Coverage table styles
var (
	DirectoryStyle = lipgloss.NewStyle().
			Foreground(ColorDirectory).
			Bold(true)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	FileStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorSelected).
				Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// Coverage level styles
var (
	CoverageHighStyle = lipgloss.NewStyle().
				Foreground(ColorCoverageHigh)

	CoverageLowStyle = lipgloss.NewStyle().
				Foreground(ColorCoverageLow)

	CoverageMediumStyle = lipgloss.NewStyle().
				Foreground(ColorCoverageMedium)

	CoverageUnknownStyle = lipgloss.NewStyle().
				Foreground(ColorCoverageUnknown)
)

// Error styles
var (
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(14)
)

// CoverageStyle returns the style used for a coverage level
func CoverageStyle(level domain.CoverageLevel) lipgloss.Style {
	switch level {
	case domain.LevelHigh:
		return CoverageHighStyle
	case domain.LevelMedium:
		return CoverageMediumStyle
	case domain.LevelLow:
		return CoverageLowStyle
	default:
		return CoverageUnknownStyle
	}
}
