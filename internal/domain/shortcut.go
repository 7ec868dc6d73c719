package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups shortcuts for display. It plays no part in resolution.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryNavigation Category = "navigation"
	CategoryPlayback   Category = "playback"
	CategoryReview     Category = "review"
	CategoryGeneration Category = "generation"
)

var categoryOrder = []Category{
	CategoryGeneral,
	CategoryNavigation,
	CategoryPlayback,
	CategoryReview,
	CategoryGeneration,
}

var titleCaser = cases.Title(language.English)

// Categories returns all categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Rank returns the display position of the category, or len(Categories()) if unknown.
func (c Category) Rank() int {
	for i, cat := range categoryOrder {
		if cat == c {
			return i
		}
	}
	return len(categoryOrder)
}

// Title returns the display name of the category
func (c Category) Title() string {
	return titleCaser.String(string(c))
}

// GlobalContext is the context of a binding reachable from every scope.
const GlobalContext = ""

// ShortcutBinding is a registered, invocable action and its default key combo.
type ShortcutBinding struct {
	Action   func()
	Category Category
	Context  string // GlobalContext when the binding matches in any scope
	ID       string // dot-namespaced, e.g. "playback.playPause"
	Key      string // default combo, used when neither an override nor the active preset maps ID
	Label    string
}

// IsGlobal reports whether the binding matches in every context.
func (b ShortcutBinding) IsGlobal() bool {
	return b.Context == GlobalContext
}

// MatchesContext applies the context rule shared by lookup, listing and conflict detection.
// An empty query matches every binding; otherwise the binding must be global or carry the same context.
func (b ShortcutBinding) MatchesContext(context string) bool {
	if context == GlobalContext || b.Context == GlobalContext {
		return true
	}
	return b.Context == context
}

// Preset is a named, immutable mapping from action id to key combo.
type Preset struct {
	Bindings    map[string]string
	Description string
	Name        string
}

// Lookup returns the preset's combo for an action id.
func (p Preset) Lookup(actionID string) (string, bool) {
	key, ok := p.Bindings[actionID]
	return key, ok
}
