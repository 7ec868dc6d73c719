package shortcuts

import (
	"sync"

	"cutdesk/internal/domain"
)

// Registry stores shortcut bindings and resolves keys through three layers:
// custom override, then the active preset, then the binding's own default.
// Resolution is recomputed on every call so preset and override changes apply immediately.
//
// Lookups never fail: unknown ids and keys degrade to empty results.
type Registry struct {
	mu sync.RWMutex

	activePreset  string
	bindings      map[string]domain.ShortcutBinding
	defaultPreset string
	order         []string // registration order of ids in bindings
	overrides     map[string]string
	presets       PresetTable
}

// Option configures a Registry.
type Option func(*Registry)

// WithPresets replaces the shipped preset table.
func WithPresets(presets PresetTable) Option {
	return func(r *Registry) {
		r.presets = presets
	}
}

// WithDefaultPreset sets the preset that is active initially and after Reset.
func WithDefaultPreset(name string) Option {
	return func(r *Registry) {
		r.defaultPreset = name
	}
}

// NewRegistry creates an empty registry using DefaultPresets unless told otherwise.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		bindings:      make(map[string]domain.ShortcutBinding),
		defaultPreset: domain.DefaultPresetName,
		overrides:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.presets == nil {
		r.presets = DefaultPresets()
	}
	r.activePreset = r.defaultPreset
	return r
}

// Register inserts the binding, replacing any binding with the same id.
// A replaced binding keeps its original registration position.
func (r *Registry) Register(b domain.ShortcutBinding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[b.ID]; !exists {
		r.order = append(r.order, b.ID)
	}
	r.bindings[b.ID] = b
}

// Unregister removes the binding with the given id, if any.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[id]; !exists {
		return
	}
	delete(r.bindings, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Binding returns the registered binding for id.
func (r *Registry) Binding(id string) (domain.ShortcutBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[id]
	return b, ok
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// SetPreset makes name the active preset. Unknown names are accepted and simply never match.
func (r *Registry) SetPreset(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activePreset = name
}

// ActivePreset returns the active preset name.
func (r *Registry) ActivePreset() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activePreset
}

// Presets returns the names of all known presets.
func (r *Registry) Presets() []string {
	return r.presets.Names()
}

// Preset returns a copy of the named preset.
func (r *Registry) Preset(name string) (domain.Preset, bool) {
	return r.presets.Get(name)
}

// SetCustomBinding overrides the key for a single action.
func (r *Registry) SetCustomBinding(actionID, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[actionID] = key
}

// RemoveCustomBinding drops the override for a single action.
func (r *Registry) RemoveCustomBinding(actionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, actionID)
}

// CustomOverrides returns a copy of all overrides.
func (r *Registry) CustomOverrides() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyOverrides(r.overrides)
}

// SetAllCustomOverrides replaces every override with the given set. Previous overrides do not survive.
func (r *Registry) SetAllCustomOverrides(overrides map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides = copyOverrides(overrides)
}

// ResolvedBinding returns the effective key for an action id, or "" if nothing maps it.
func (r *Registry) ResolvedBinding(actionID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked(actionID)
}

func (r *Registry) resolveLocked(actionID string) string {
	if key, ok := r.overrides[actionID]; ok {
		return key
	}
	if key, ok := r.presets.lookup(r.activePreset, actionID); ok {
		return key
	}
	if b, ok := r.bindings[actionID]; ok {
		return b.Key
	}
	return ""
}

// ShortcutForKey finds the binding whose resolved key equals key in the given context.
//
// When several bindings match, a binding scoped to exactly the queried context wins over a global
// binding, and a global binding wins over any other match. Within a tier the earliest registration wins.
func (r *Registry) ShortcutForKey(key, context string) (domain.ShortcutBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if key == "" {
		return domain.ShortcutBinding{}, false
	}

	var (
		global   *domain.ShortcutBinding
		fallback *domain.ShortcutBinding
	)
	for _, id := range r.order {
		b := r.bindings[id]
		if !b.MatchesContext(context) || r.resolveLocked(id) != key {
			continue
		}
		switch {
		case context != domain.GlobalContext && b.Context == context:
			return b, true
		case b.IsGlobal():
			if global == nil {
				global = &b
			}
		default:
			if fallback == nil {
				fallback = &b
			}
		}
	}

	if global != nil {
		return *global, true
	}
	if fallback != nil {
		return *fallback, true
	}
	return domain.ShortcutBinding{}, false
}

// AllBindings returns the bindings visible in context, in registration order.
func (r *Registry) AllBindings(context string) []domain.ShortcutBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ShortcutBinding, 0, len(r.order))
	for _, id := range r.order {
		b := r.bindings[id]
		if b.MatchesContext(context) {
			out = append(out, b)
		}
	}
	return out
}

// Conflicts returns every binding in context whose resolved key equals key.
func (r *Registry) Conflicts(key, context string) []domain.ShortcutBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.ShortcutBinding
	if key == "" {
		return out
	}
	for _, id := range r.order {
		b := r.bindings[id]
		if b.MatchesContext(context) && r.resolveLocked(id) == key {
			out = append(out, b)
		}
	}
	return out
}

// ResolvedKeymap returns the effective key of every registered binding.
func (r *Registry) ResolvedKeymap() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.bindings))
	for _, id := range r.order {
		out[id] = r.resolveLocked(id)
	}
	return out
}

// Snapshot returns the active preset and overrides as a keymap document.
func (r *Registry) Snapshot() *domain.UserKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &domain.UserKeymap{
		ActivePreset:   r.activePreset,
		CustomBindings: copyOverrides(r.overrides),
	}
}

// Apply installs a keymap document: its preset becomes active and its overrides replace the current set.
func (r *Registry) Apply(keymap *domain.UserKeymap) {
	if keymap == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activePreset = keymap.ActivePreset
	if r.activePreset == "" {
		r.activePreset = r.defaultPreset
	}
	r.overrides = copyOverrides(keymap.CustomBindings)
}

// Reset clears bindings and overrides and restores the default preset.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activePreset = r.defaultPreset
	r.bindings = make(map[string]domain.ShortcutBinding)
	r.order = nil
	r.overrides = make(map[string]string)
}

func copyOverrides(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for id, key := range in {
		out[id] = key
	}
	return out
}
