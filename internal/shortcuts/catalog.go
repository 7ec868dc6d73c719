package shortcuts

import (
	"sort"
	"sync"

	"cutdesk/internal/domain"
)

// Scopes used by contextual bindings.
// ContextTimeline has no bindings of its own; focusing it limits resolution to global bindings.
const (
	ContextGeneration = "generation-panel"
	ContextReview     = "review-panel"
	ContextTimeline   = "timeline-panel"
)

// ActionSpec describes a bindable action without its behaviour.
// The catalog is the single source of truth for ids, labels and default combos.
type ActionSpec struct {
	Category domain.Category
	Context  string
	ID       string
	Key      string
	Label    string
}

// Bind attaches behaviour to the spec, producing a registrable binding.
func (s ActionSpec) Bind(action func()) domain.ShortcutBinding {
	return domain.ShortcutBinding{
		Action:   action,
		Category: s.Category,
		Context:  s.Context,
		ID:       s.ID,
		Key:      s.Key,
		Label:    s.Label,
	}
}

var catalog = []ActionSpec{
	// General
	{ID: "general.cancel", Key: "Escape", Label: "Close overlay / cancel", Category: domain.CategoryGeneral},
	{ID: "general.help", Key: "?", Label: "Show keyboard shortcuts", Category: domain.CategoryGeneral},
	{ID: "general.keymapEditor", Key: "Ctrl+k", Label: "Edit keyboard shortcuts", Category: domain.CategoryGeneral},
	{ID: "general.quit", Key: "Ctrl+q", Label: "Quit", Category: domain.CategoryGeneral},
	{ID: "general.redo", Key: "Ctrl+y", Label: "Redo", Category: domain.CategoryGeneral},
	{ID: "general.save", Key: "Ctrl+s", Label: "Save keymap", Category: domain.CategoryGeneral},
	{ID: "general.undo", Key: "Ctrl+z", Label: "Undo", Category: domain.CategoryGeneral},

	// Navigation
	{ID: "navigation.back10", Key: "Shift+ArrowLeft", Label: "Back 10 frames", Category: domain.CategoryNavigation},
	{ID: "navigation.forward10", Key: "Shift+ArrowRight", Label: "Forward 10 frames", Category: domain.CategoryNavigation},
	{ID: "navigation.goToEnd", Key: "End", Label: "Go to last frame", Category: domain.CategoryNavigation},
	{ID: "navigation.goToStart", Key: "Home", Label: "Go to first frame", Category: domain.CategoryNavigation},
	{ID: "navigation.nextFrame", Key: "ArrowRight", Label: "Next frame", Category: domain.CategoryNavigation},
	{ID: "navigation.nextPanel", Key: "Tab", Label: "Focus next panel", Category: domain.CategoryNavigation},
	{ID: "navigation.prevFrame", Key: "ArrowLeft", Label: "Previous frame", Category: domain.CategoryNavigation},
	{ID: "navigation.prevPanel", Key: "Shift+Tab", Label: "Focus previous panel", Category: domain.CategoryNavigation},

	// Playback
	{ID: "playback.markIn", Key: "i", Label: "Mark in", Category: domain.CategoryPlayback},
	{ID: "playback.markOut", Key: "o", Label: "Mark out", Category: domain.CategoryPlayback},
	{ID: "playback.playPause", Key: "Space", Label: "Play / pause", Category: domain.CategoryPlayback},
	{ID: "playback.shuttleForward", Key: "l", Label: "Shuttle forward", Category: domain.CategoryPlayback},
	{ID: "playback.shuttleReverse", Key: "j", Label: "Shuttle reverse", Category: domain.CategoryPlayback},
	{ID: "playback.shuttleStop", Key: "k", Label: "Stop shuttle", Category: domain.CategoryPlayback},
	{ID: "playback.toggleLoop", Key: "Ctrl+l", Label: "Toggle loop", Category: domain.CategoryPlayback},

	// Review
	{ID: "review.approve", Key: "a", Label: "Approve segment", Category: domain.CategoryReview, Context: ContextReview},
	{ID: "review.flag", Key: "f", Label: "Flag segment", Category: domain.CategoryReview, Context: ContextReview},
	{ID: "review.nextItem", Key: "n", Label: "Next segment", Category: domain.CategoryReview, Context: ContextReview},
	{ID: "review.note", Key: "Enter", Label: "Write review note", Category: domain.CategoryReview, Context: ContextReview},
	{ID: "review.reject", Key: "r", Label: "Reject segment", Category: domain.CategoryReview, Context: ContextReview},

	// Generation
	{ID: "generation.cancel", Key: "Escape", Label: "Cancel generation", Category: domain.CategoryGeneration, Context: ContextGeneration},
	{ID: "generation.generate", Key: "g", Label: "Generate segment", Category: domain.CategoryGeneration, Context: ContextGeneration},
	{ID: "generation.regenerate", Key: "Shift+G", Label: "Regenerate segment", Category: domain.CategoryGeneration, Context: ContextGeneration},
}

var (
	catalogIndex     map[string]ActionSpec
	catalogIndexOnce sync.Once
)

// Catalog returns every bindable action, ordered by category then id.
func Catalog() []ActionSpec {
	out := make([]ActionSpec, len(catalog))
	copy(out, catalog)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category.Rank() < out[j].Category.Rank()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LookupAction returns the catalog entry for an action id.
func LookupAction(id string) (ActionSpec, bool) {
	catalogIndexOnce.Do(func() {
		catalogIndex = make(map[string]ActionSpec, len(catalog))
		for _, spec := range catalog {
			catalogIndex[spec.ID] = spec
		}
	})
	spec, ok := catalogIndex[id]
	return spec, ok
}

// IsKnownAction reports whether the id names a catalog action.
func IsKnownAction(id string) bool {
	_, ok := LookupAction(id)
	return ok
}

// RegisterCatalog registers every catalog action with a no-op behaviour.
// Command-line tools use it to resolve and list keys without a running UI.
func RegisterCatalog(r *Registry) {
	for _, spec := range catalog {
		r.Register(spec.Bind(nil))
	}
}
