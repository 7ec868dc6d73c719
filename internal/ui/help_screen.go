package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"cutdesk/internal/theme"
)

// renderShortcut renders a single shortcut line with key and description
func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

// renderBinding renders a single shortcut line from a key binding
func renderBinding(binding key.Binding) string {
	help := binding.Help()
	return renderShortcut(help.Key, help.Desc)
}

// buildHelpContent lists every binding in the key map, grouped by category
func buildHelpContent(keys KeyMap, scopeName string) string {
	var b strings.Builder

	b.WriteString(theme.PanelTitleStyle.Render("Shortcuts in " + scopeName))
	b.WriteString("\n")
	for i, group := range keys.FullHelp() {
		b.WriteString(theme.HelpGroupStyle.Render(keys.Titles()[i]))
		b.WriteString("\n")
		for _, binding := range group {
			b.WriteString(renderBinding(binding))
		}
	}

	b.WriteString(theme.HelpStyle.Render("Press esc or ? to close"))
	return b.String()
}
