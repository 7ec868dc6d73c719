package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	errorPrefix   = "Error: "
	maxErrorLines = 2
)

// formatErrorForDisplay wraps an error to width and keeps at most maxErrorLines lines,
// ending with "..." when text was cut.
func formatErrorForDisplay(err error, width int) string {
	if err == nil {
		return ""
	}

	message := err.Error()
	if message == "" {
		message = "unknown error"
	}
	width = max(width, 10)

	wrapped := lipgloss.NewStyle().Width(width).Render(errorPrefix + message)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if len(lines) <= maxErrorLines {
		return strings.Join(lines, "\n")
	}

	lines = lines[:maxErrorLines]
	last := []rune(lines[maxErrorLines-1])
	if len(last)+3 > width {
		last = last[:max(0, width-3)]
	}
	lines[maxErrorLines-1] = string(last) + "..."
	return strings.Join(lines, "\n")
}
