package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"cutdesk/internal/domain"
	"cutdesk/internal/shortcuts"
)

// shortHelpActions are shown in the bottom bar, in order
var shortHelpActions = []string{
	"playback.playPause",
	"navigation.prevFrame",
	"navigation.nextFrame",
	"playback.markIn",
	"playback.markOut",
	"navigation.nextPanel",
	"general.keymapEditor",
	"general.help",
	"general.quit",
}

// KeyMap exposes the registry's resolved bindings for one scope as bubbles key bindings.
// It is rebuilt whenever focus, preset or overrides change.
type KeyMap struct {
	groups [][]key.Binding
	short  []key.Binding
	titles []string
}

// NewKeyMap builds the help key map for bindings visible in scope
func NewKeyMap(registry *shortcuts.Registry, scope string) KeyMap {
	byCategory := make(map[domain.Category][]key.Binding)
	byID := make(map[string]key.Binding)

	for _, b := range registry.AllBindings(scope) {
		combo := registry.ResolvedBinding(b.ID)
		binding := key.NewBinding(
			key.WithKeys(b.ID),
			key.WithHelp(displayCombo(combo), b.Label),
		)
		if combo == "" {
			binding.SetEnabled(false)
		}
		byCategory[b.Category] = append(byCategory[b.Category], binding)
		byID[b.ID] = binding
	}

	var km KeyMap
	for _, category := range domain.Categories() {
		if bindings := byCategory[category]; len(bindings) > 0 {
			km.groups = append(km.groups, bindings)
			km.titles = append(km.titles, category.Title())
		}
	}
	for _, id := range shortHelpActions {
		if binding, ok := byID[id]; ok {
			km.short = append(km.short, binding)
		}
	}
	return km
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return k.short
}

// FullHelp implements help.KeyMap, one column per category
func (k KeyMap) FullHelp() [][]key.Binding {
	return k.groups
}

// Titles returns the category title of each FullHelp column
func (k KeyMap) Titles() []string {
	return k.titles
}

// displayCombo renders a combo for humans, e.g. "Ctrl+ArrowLeft" as "ctrl+←"
func displayCombo(combo string) string {
	if combo == "" {
		return "unbound"
	}
	if glyph, ok := comboGlyphs[combo]; ok {
		return glyph
	}

	out := []rune{}
	start := 0
	for i := 0; i <= len(combo); i++ {
		if i < len(combo) && (combo[i] != '+' || i == start) {
			continue
		}
		part := combo[start:i]
		if glyph, ok := comboGlyphs[part]; ok {
			part = glyph
		}
		if len(out) > 0 {
			out = append(out, '+')
		}
		out = append(out, []rune(part)...)
		start = i + 1
	}
	return string(out)
}

var comboGlyphs = map[string]string{
	"Alt":        "alt",
	"ArrowDown":  "↓",
	"ArrowLeft":  "←",
	"ArrowRight": "→",
	"ArrowUp":    "↑",
	"Ctrl":       "ctrl",
	"Escape":     "esc",
	"PageDown":   "pgdn",
	"PageUp":     "pgup",
	"Shift":      "shift",
	"Space":      "space",
}
