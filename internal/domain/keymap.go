package domain

import "time"

// DefaultPresetName is the preset active for users that never picked one.
const DefaultPresetName = "default"

// UserKeymap is a user's persisted shortcut preferences.
type UserKeymap struct {
	ActivePreset   string            `json:"active_preset" toml:"active_preset" yaml:"active_preset"`
	CreatedAt      time.Time         `json:"created_at,omitzero" toml:"-" yaml:"-"`
	CustomBindings map[string]string `json:"custom_bindings" toml:"custom_bindings" yaml:"custom_bindings"`
	UpdatedAt      time.Time         `json:"updated_at,omitzero" toml:"-" yaml:"-"`
	User           string            `json:"user,omitempty" toml:"-" yaml:"-"`
}

// KeymapUpdate is a partial upsert. Nil fields keep the stored value.
type KeymapUpdate struct {
	ActivePreset   *string           `json:"active_preset,omitempty"`
	CustomBindings map[string]string `json:"custom_bindings,omitempty"`
}
