package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// compositeOverlay renders overlay centered on top of a dimmed copy of background.
func compositeOverlay(background, overlay string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	for i, line := range bgLines {
		dimmed := dimStyle.Render(ansi.Strip(line))
		if pad := width - lipgloss.Width(dimmed); pad > 0 {
			dimmed += strings.Repeat(" ", pad)
		}
		bgLines[i] = dimmed
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := lipgloss.Width(overlay)
	startX := max(0, (width-overlayWidth)/2)
	startY := max(0, (max(height, len(bgLines))-len(overlayLines))/2)

	left := dimStyle.Render(strings.Repeat(" ", startX))
	for i, line := range overlayLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		right := max(0, width-startX-lipgloss.Width(line))
		bgLines[y] = left + line + dimStyle.Render(strings.Repeat(" ", right))
	}

	return strings.Join(bgLines, "\n")
}
