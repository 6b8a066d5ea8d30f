package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Coverage level colors
const (
	ColorCoverageHigh    Color = "2"   // Green
	ColorCoverageLow     Color = "1"   // Red
	ColorCoverageMedium  Color = "214" // Orange
	ColorCoverageUnknown Color = "8"   // Gray - no instrumented units
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSelected  Color = "237" // Dark gray - cursor row background
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorDirectory Color = "33"  // Blue
	ColorHelpGroup Color = "141" // Purple
	ColorSpinner   Color = "205" // Pink
	ColorSuccess   Color = "46"  // Bright green - loaded checkmark
)
