package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/theme"
)

const (
	coverageColumnWidth = 10
	minNameWidth        = 12
	// borders and cell padding around the two columns
	tableChromeWidth = 7
)

// directoryTable renders the normalized coverage list of one directory
type directoryTable struct {
	cursor     int
	height     int // rows available for entries
	records    []domain.CoverageRecord
	thresholds domain.Thresholds
	width      int
}

// window returns the first visible row index keeping the cursor in view
func (t directoryTable) window() (start, end int) {
	height := t.height
	if height < 1 || height > len(t.records) {
		height = len(t.records)
	}
	start = 0
	if t.cursor >= height {
		start = t.cursor - height + 1
	}
	end = start + height
	if end > len(t.records) {
		end = len(t.records)
	}
	return start, end
}

func (t directoryTable) nameWidth() int {
	width := t.width - coverageColumnWidth - tableChromeWidth
	if width < minNameWidth {
		return minNameWidth
	}
	return width
}

// entryName renders a record's name with a trailing "/" for directories
func entryName(r domain.CoverageRecord, maxWidth int) string {
	name := r.Name
	if r.IsDirectory {
		name += "/"
	}
	return runewidth.Truncate(name, maxWidth, "…")
}

// View renders the table, or an empty notice when there are no rows
func (t directoryTable) View() string {
	if len(t.records) == 0 {
		return theme.EmptyStyle.Render("No entries in this directory")
	}

	start, end := t.window()
	visible := t.records[start:end]
	nameWidth := t.nameWidth()

	rows := make([][]string, 0, len(visible))
	for _, r := range visible {
		rows = append(rows, []string{entryName(r, nameWidth), domain.FormatPercent(r)})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorMuted)).
		Headers("File", "Coverage").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeaderStyle
			}
			if row < 0 || row >= len(visible) {
				return theme.TableCellStyle
			}

			record := visible[row]
			var style lipgloss.Style
			switch {
			case col == 1:
				style = theme.CoverageStyle(t.thresholds.Level(record)).Inherit(theme.TableCellStyle).Align(lipgloss.Right)
			case record.IsDirectory:
				style = theme.DirectoryStyle.Inherit(theme.TableCellStyle)
			default:
				style = theme.FileStyle.Inherit(theme.TableCellStyle)
			}
			if start+row == t.cursor {
				style = style.Inherit(theme.SelectedRowStyle)
			}
			return style
		})

	return tbl.Render()
}
