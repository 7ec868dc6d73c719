package dispatch

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"cutdesk/internal/domain"
	"cutdesk/internal/logging"
	"cutdesk/internal/shortcuts"
)

// Resolver finds the binding for a combo in a context; *shortcuts.Registry implements it.
type Resolver interface {
	ShortcutForKey(key, context string) (domain.ShortcutBinding, bool)
}

// Handler turns key events into action invocations.
// Dispatch is synchronous and invokes at most one action per keystroke.
type Handler struct {
	resolver Resolver
}

var (
	installed     *Handler
	installedOnce sync.Once
)

// NewHandler creates a handler resolving through resolver.
func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// Install returns the process-wide handler, creating it on first call.
// Later calls return the same handler and ignore their argument.
func Install(resolver Resolver) *Handler {
	installedOnce.Do(func() {
		installed = NewHandler(resolver)
		logging.Logger.Debug("Global shortcut handler installed")
	})
	return installed
}

// HandleKey resolves and invokes the action bound to ev in target's scope.
// It returns true when the key was consumed and must not propagate further.
func (h *Handler) HandleKey(ev shortcuts.KeyEvent, target Target) bool {
	if target != nil && target.AcceptsText() {
		return false
	}

	combo, ok := shortcuts.Normalize(ev)
	if !ok {
		return false
	}

	return h.dispatch(combo, ScopeOf(target))
}

// HandleKeyMsg is HandleKey for terminal key messages.
func (h *Handler) HandleKeyMsg(msg tea.KeyMsg, target Target) bool {
	if target != nil && target.AcceptsText() {
		return false
	}

	combo, ok := shortcuts.ComboFromKeyMsg(msg)
	if !ok {
		return false
	}

	return h.dispatch(combo, ScopeOf(target))
}

func (h *Handler) dispatch(combo, scope string) bool {
	binding, found := h.resolver.ShortcutForKey(combo, scope)
	if !found {
		return false
	}

	logging.Logger.Debug("Dispatching shortcut",
		"combo", combo,
		"scope", scope,
		"action", binding.ID)

	if binding.Action != nil {
		binding.Action()
	}
	return true
}
