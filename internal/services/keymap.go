package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cutdesk/internal/domain"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
	"cutdesk/internal/shortcuts"
)

// Keymap document formats for export and import
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Formats lists the supported keymap document formats
func Formats() []string {
	return []string{FormatJSON, FormatTOML, FormatYAML}
}

// KeymapService keeps a registry in sync with a user's stored keymap
type KeymapService struct {
	registry *shortcuts.Registry
	store    ports.KeymapStore
	user     string
}

// NewKeymapService creates a new KeymapService
func NewKeymapService(store ports.KeymapStore, registry *shortcuts.Registry, user string) *KeymapService {
	return &KeymapService{
		registry: registry,
		store:    store,
		user:     user,
	}
}

// Registry returns the registry the service writes into
func (s *KeymapService) Registry() *shortcuts.Registry {
	return s.registry
}

// User returns the user whose keymap the service manages
func (s *KeymapService) User() string {
	return s.user
}

// Load applies the stored keymap to the registry.
// A user without a stored keymap gets the default preset and no overrides.
// When the store fails the registry also falls back to defaults and the error is returned for reporting.
func (s *KeymapService) Load(ctx context.Context) error {
	keymap, err := s.store.Get(ctx, s.user)
	if err != nil {
		s.registry.Apply(&domain.UserKeymap{User: s.user})
		if errors.Is(err, domain.ErrKeymapNotFound) {
			logging.Logger.Debug("No stored keymap, using defaults", "user", s.user)
			return nil
		}
		logging.Logger.Warn("Failed to load keymap, using defaults", "user", s.user, "error", err)
		return fmt.Errorf("failed to load keymap: %w", err)
	}

	if keymap.ActivePreset != "" && !s.knownPreset(keymap.ActivePreset) {
		logging.Logger.Warn("Stored keymap uses an unknown preset", "user", s.user, "preset", keymap.ActivePreset)
	}

	s.registry.Apply(keymap)
	logging.Logger.Info("Keymap loaded",
		"user", s.user,
		"preset", s.registry.ActivePreset(),
		"overrides", len(keymap.CustomBindings))
	return nil
}

// Save writes the registry's preset and overrides to the store
func (s *KeymapService) Save(ctx context.Context) error {
	snapshot := s.registry.Snapshot()
	return s.upsert(ctx, domain.KeymapUpdate{
		ActivePreset:   &snapshot.ActivePreset,
		CustomBindings: snapshot.CustomBindings,
	})
}

// SetPreset activates a known preset and stores the choice
func (s *KeymapService) SetPreset(ctx context.Context, name string) error {
	if !s.knownPreset(name) {
		return fmt.Errorf("preset %q: %w", name, domain.ErrUnknownPreset)
	}

	s.registry.SetPreset(name)
	logging.Logger.Info("Preset activated", "user", s.user, "preset", name)
	return s.upsert(ctx, domain.KeymapUpdate{ActivePreset: &name})
}

// SetBinding overrides the key of a registered action.
// Other bindings already resolving to the combo in the action's context are returned.
// Unless force is set they block the change with domain.ErrBindingConflict.
func (s *KeymapService) SetBinding(ctx context.Context, actionID, combo string, force bool) ([]domain.ShortcutBinding, error) {
	binding, ok := s.registry.Binding(actionID)
	if !ok {
		return nil, fmt.Errorf("action %q: %w", actionID, domain.ErrUnknownAction)
	}

	canonical, err := shortcuts.ParseCombo(combo)
	if err != nil {
		return nil, err
	}

	conflicts := s.conflicts(canonical, binding)
	if len(conflicts) > 0 && !force {
		return conflicts, fmt.Errorf("%s is already bound to %s: %w", canonical, conflicts[0].ID, domain.ErrBindingConflict)
	}

	s.registry.SetCustomBinding(actionID, canonical)
	logging.Logger.Info("Custom binding set", "user", s.user, "action", actionID, "key", canonical, "conflicts", len(conflicts))

	return conflicts, s.upsert(ctx, domain.KeymapUpdate{CustomBindings: s.registry.CustomOverrides()})
}

// UnsetBinding drops the override of an action so it follows the preset again
func (s *KeymapService) UnsetBinding(ctx context.Context, actionID string) error {
	if _, ok := s.registry.CustomOverrides()[actionID]; !ok {
		return fmt.Errorf("action %q has no custom binding: %w", actionID, domain.ErrUnknownAction)
	}

	s.registry.RemoveCustomBinding(actionID)
	logging.Logger.Info("Custom binding removed", "user", s.user, "action", actionID)
	return s.upsert(ctx, domain.KeymapUpdate{CustomBindings: s.registry.CustomOverrides()})
}

// ResetBindings removes every override. The active preset is kept.
func (s *KeymapService) ResetBindings(ctx context.Context) error {
	s.registry.SetAllCustomOverrides(nil)
	logging.Logger.Info("Custom bindings reset", "user", s.user)
	return s.upsert(ctx, domain.KeymapUpdate{CustomBindings: map[string]string{}})
}

// Export encodes the active preset and overrides as a keymap document
func (s *KeymapService) Export(format string) ([]byte, error) {
	snapshot := s.registry.Snapshot()

	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode keymap: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to encode keymap: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to encode keymap: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported keymap format %q (expected %s)", format, strings.Join(Formats(), ", "))
	}
}

// Import replaces the overrides (and the preset, when the document names one) with a keymap document.
// Every action and preset in the document must be known; nothing changes otherwise.
func (s *KeymapService) Import(ctx context.Context, data []byte, format string) (*domain.UserKeymap, error) {
	doc, err := decodeKeymap(data, format)
	if err != nil {
		return nil, err
	}

	if doc.ActivePreset != "" && !s.knownPreset(doc.ActivePreset) {
		return nil, fmt.Errorf("preset %q: %w", doc.ActivePreset, domain.ErrUnknownPreset)
	}

	bindings := make(map[string]string, len(doc.CustomBindings))
	for actionID, combo := range doc.CustomBindings {
		if _, ok := s.registry.Binding(actionID); !ok {
			return nil, fmt.Errorf("action %q: %w", actionID, domain.ErrUnknownAction)
		}
		canonical, err := shortcuts.ParseCombo(combo)
		if err != nil {
			return nil, fmt.Errorf("binding for %s: %w", actionID, err)
		}
		bindings[actionID] = canonical
	}

	update := domain.KeymapUpdate{CustomBindings: bindings}
	if doc.ActivePreset != "" {
		s.registry.SetPreset(doc.ActivePreset)
		update.ActivePreset = &doc.ActivePreset
	}
	s.registry.SetAllCustomOverrides(bindings)

	logging.Logger.Info("Keymap imported", "user", s.user, "preset", s.registry.ActivePreset(), "overrides", len(bindings))
	if err := s.upsert(ctx, update); err != nil {
		return nil, err
	}
	return s.registry.Snapshot(), nil
}

func (s *KeymapService) upsert(ctx context.Context, update domain.KeymapUpdate) error {
	if _, err := s.store.Upsert(ctx, s.user, update); err != nil {
		logging.Logger.Error("Failed to store keymap", "user", s.user, "error", err)
		return fmt.Errorf("failed to store keymap: %w", err)
	}
	return nil
}

func (s *KeymapService) knownPreset(name string) bool {
	return slices.Contains(s.registry.Presets(), name)
}

// conflicts returns the bindings other than b that resolve to combo where b is active.
// A global binding collides with everything; a scoped one only with its own context and globals.
func (s *KeymapService) conflicts(combo string, b domain.ShortcutBinding) []domain.ShortcutBinding {
	var out []domain.ShortcutBinding
	for _, other := range s.registry.Conflicts(combo, b.Context) {
		if other.ID != b.ID {
			out = append(out, other)
		}
	}
	return out
}

func decodeKeymap(data []byte, format string) (*domain.UserKeymap, error) {
	var doc domain.UserKeymap

	switch strings.ToLower(format) {
	case "", FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid keymap document: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid keymap document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid keymap document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported keymap format %q (expected %s)", format, strings.Join(Formats(), ", "))
	}

	return &doc, nil
}
