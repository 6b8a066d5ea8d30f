package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	maxErrorLines  = 3
	truncationMark = "..."
)

// formatErrorForDisplay wraps an error message to maxWidth and caps it at
// maxErrorLines, ending with "..." when the message had to be cut.
func formatErrorForDisplay(message string, maxWidth int) string {
	if message == "" {
		return ""
	}

	lineWidth := maxWidth
	if lineWidth < 10 {
		lineWidth = 10 // Minimum width to prevent edge cases
	}

	words := strings.Fields(message)
	if len(words) == 0 {
		return message
	}

	var lines []string
	var currentLine strings.Builder
	truncated := false

	for i, word := range words {
		wordLen := utf8.RuneCountInString(word)
		currentLen := utf8.RuneCountInString(currentLine.String())

		if currentLen > 0 && currentLen+1+wordLen > lineWidth {
			lines = append(lines, currentLine.String())
			currentLine.Reset()

			if len(lines) >= maxErrorLines {
				truncated = i < len(words)
				break
			}
		}

		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, currentLine.String())
	}

	if truncated {
		lastLine := lines[maxErrorLines-1]
		truncLen := utf8.RuneCountInString(truncationMark)

		// Make room for the mark
		if utf8.RuneCountInString(lastLine)+truncLen > lineWidth {
			maxRunes := lineWidth - truncLen
			runes := []rune(lastLine)
			if maxRunes > 0 && len(runes) > maxRunes {
				lastLine = string(runes[:maxRunes])
			}
		}
		lines[maxErrorLines-1] = lastLine + truncationMark
	}

	return strings.Join(lines, "\n")
}
