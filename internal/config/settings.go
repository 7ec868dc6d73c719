package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gofrs/flock"
	"github.com/tidwall/jsonc"

	"cutdesk/internal/jogdial"
)

// Keymap store kinds
const (
	KeymapStoreLocal  = "local"
	KeymapStoreRemote = "remote"
)

// Defaults applied when settings.json leaves a field unset
const (
	DefaultSSHHost = "localhost"
	DefaultSSHPort = "23234"
	DefaultUser    = "local"
)

// JogSettings overrides jog dial physics. Unset fields keep the engine defaults.
type JogSettings struct {
	DegreesPerStep   *float64 `json:"degrees_per_step,omitempty"`
	Friction         *float64 `json:"friction,omitempty"`
	MaxFramesPerTick *int     `json:"max_frames_per_tick,omitempty"`
	StopThreshold    *float64 `json:"stop_threshold,omitempty"`
}

// Partial converts the settings into an engine config update
func (j *JogSettings) Partial() jogdial.PartialConfig {
	if j == nil {
		return jogdial.PartialConfig{}
	}
	return jogdial.PartialConfig{
		DegreesPerStep:   j.DegreesPerStep,
		Friction:         j.Friction,
		MaxFramesPerTick: j.MaxFramesPerTick,
		StopThreshold:    j.StopThreshold,
	}
}

// Settings represents the structure of $CUTDESK_HOME/settings.json.
// Comments are allowed in the file.
type Settings struct {
	Debug         *bool        `json:"debug,omitempty"`
	DefaultPreset string       `json:"default_preset,omitempty"`
	Jog           *JogSettings `json:"jog,omitempty"`
	KeymapStore   string       `json:"keymap_store,omitempty"`
	MaxLogFiles   *int         `json:"max_log_files,omitempty"`
	RemoteToken   string       `json:"remote_token,omitempty"`
	RemoteURL     string       `json:"remote_url,omitempty"`
	SSHHost       string       `json:"ssh_host,omitempty"`
	SSHPort       string       `json:"ssh_port,omitempty"`
	User          string       `json:"user,omitempty"`
}

// Validate checks field values. presets lists the preset names default_preset may use.
func (s *Settings) Validate(presets []string) error {
	switch s.KeymapStore {
	case "", KeymapStoreLocal:
	case KeymapStoreRemote:
		if s.RemoteURL == "" {
			return fmt.Errorf("keymap_store 'remote' requires remote_url")
		}
	default:
		return fmt.Errorf("unknown keymap_store '%s' (expected local or remote)", s.KeymapStore)
	}

	if s.DefaultPreset != "" && !slices.Contains(presets, s.DefaultPreset) {
		return fmt.Errorf("unknown default_preset '%s'", s.DefaultPreset)
	}

	return nil
}

// StoreKind returns the keymap store kind with the default applied
func (s *Settings) StoreKind() string {
	if s.KeymapStore == "" {
		return KeymapStoreLocal
	}
	return s.KeymapStore
}

// UserName returns the configured user, then $USER, then DefaultUser
func (s *Settings) UserName() string {
	if s.User != "" {
		return s.User
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return DefaultUser
}

// LoadSettings loads settings from $CUTDESK_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $CUTDESK_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), settings)
}

// SaveSettingsTo writes settings to path. Concurrent writers are serialised with a lock file
// and the file is replaced atomically so watchers never read a partial document.
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}
