package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"cutdesk/internal/config"
	"cutdesk/internal/shortcuts"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Set  SettingsSetCmd  `cmd:"set" help:"Change one setting in settings.json"`
	Edit SettingsEditCmd `cmd:"edit" help:"Open settings.json in an editor"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return writeJSON(os.Stdout, map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)

	flat := make(map[string]string)
	flattenExample("", example, flat)
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, len(keys))
	for i, key := range keys {
		rows[i] = []string{key, flat[key]}
	}
	fmt.Println(renderTable([]string{"SETTING", "EXAMPLE"}, rows))

	fmt.Println()
	fmt.Println("Create or edit this file to configure cutdesk. Comments are allowed.")
	fmt.Println("All settings are optional and have sensible defaults.")
	return nil
}

// flattenExample turns nested example maps into dotted keys
func flattenExample(prefix string, example map[string]any, out map[string]string) {
	for key, value := range example {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenExample(key, nested, out)
			continue
		}
		out[key] = fmt.Sprintf("%v", value)
	}
}

// SettingsSetCmd writes a single setting
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name, e.g. default_preset or jog.friction"`
	Value string `arg:"" help:"New value"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := applySetting(settings, s.Key, s.Value); err != nil {
		return err
	}
	if err := settings.Validate(shortcuts.DefaultPresets().Names()); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", s.Key, s.Value)
	return nil
}

// applySetting parses value into the named field of settings
func applySetting(settings *config.Settings, key, value string) error {
	jog := func() *config.JogSettings {
		if settings.Jog == nil {
			settings.Jog = &config.JogSettings{}
		}
		return settings.Jog
	}
	parseFloat := func() (*float64, error) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", key, err)
		}
		return &f, nil
	}
	parseInt := func() (*int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		return &n, nil
	}

	var err error
	switch key {
	case "debug":
		b, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return fmt.Errorf("debug must be true or false: %w", parseErr)
		}
		settings.Debug = &b
	case "default_preset":
		settings.DefaultPreset = value
	case "keymap_store":
		settings.KeymapStore = value
	case "max_log_files":
		settings.MaxLogFiles, err = parseInt()
	case "remote_token":
		settings.RemoteToken = value
	case "remote_url":
		settings.RemoteURL = value
	case "ssh_host":
		settings.SSHHost = value
	case "ssh_port":
		settings.SSHPort = value
	case "user":
		settings.User = value
	case "jog.degrees_per_step":
		jog().DegreesPerStep, err = parseFloat()
	case "jog.friction":
		jog().Friction, err = parseFloat()
	case "jog.max_frames_per_tick":
		jog().MaxFramesPerTick, err = parseInt()
	case "jog.stop_threshold":
		jog().StopThreshold, err = parseFloat()
	default:
		return fmt.Errorf("unknown setting %q (see 'cutdesk settings meta')", key)
	}
	return err
}

// SettingsEditCmd opens settings.json in an editor and checks the result
type SettingsEditCmd struct {
	Editor string `help:"Editor to use (overrides $CUTDESK_EDITOR, $VISUAL, $EDITOR)"`
}

// Run executes the edit command
func (s *SettingsEditCmd) Run(cli *CLI) error {
	path := config.GetSettingsPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.SaveSettings(&config.Settings{}); err != nil {
			return err
		}
	}

	if err := cli.Container.Editor.Open(context.Background(), path, s.Editor); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := settings.Validate(shortcuts.DefaultPresets().Names()); err != nil {
		return fmt.Errorf("settings.json was saved but is invalid: %w", err)
	}
	fmt.Printf("Settings saved to %s\n", path)
	return nil
}
