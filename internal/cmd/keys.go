package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/gobwas/glob"
	"github.com/mattn/go-isatty"

	"cutdesk/internal/domain"
	"cutdesk/internal/logging"
	"cutdesk/internal/services"
	"cutdesk/internal/shortcuts"
)

// KeysCmd groups the shortcut commands
type KeysCmd struct {
	List      KeysListCmd      `cmd:"list" help:"List actions and their resolved keys" default:"1"`
	Set       KeysSetCmd       `cmd:"set" help:"Bind a key combo to an action"`
	Unset     KeysUnsetCmd     `cmd:"unset" help:"Remove an action's custom binding"`
	Reset     KeysResetCmd     `cmd:"reset" help:"Remove every custom binding"`
	Preset    KeysPresetCmd    `cmd:"preset" help:"Show or switch the active preset"`
	Export    KeysExportCmd    `cmd:"export" help:"Export the keymap document"`
	Import    KeysImportCmd    `cmd:"import" help:"Import a keymap document"`
	Conflicts KeysConflictsCmd `cmd:"conflicts" help:"Show which actions a key combo triggers"`
}

// keyRow is one action in 'keys list'
type keyRow struct {
	Action   string `json:"action"`
	Category string `json:"category"`
	Combo    string `json:"combo"`
	Context  string `json:"context"`
	Label    string `json:"label"`
	Source   string `json:"source"`
}

// loadKeymap applies the stored keymap; on failure the defaults stay active and a warning is printed
func loadKeymap(ctx context.Context, service *services.KeymapService) {
	if err := service.Load(ctx); err != nil {
		logging.Logger.Warn("Failed to load keymap, using defaults", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: failed to load keymap, using defaults: %v\n", err)
	}
}

func contextLabel(context string) string {
	if context == domain.GlobalContext {
		return "global"
	}
	return context
}

// bindingSource names the layer a resolved key comes from
func bindingSource(registry *shortcuts.Registry, actionID string, overrides map[string]string) string {
	if _, ok := overrides[actionID]; ok {
		return "custom"
	}
	if preset, ok := registry.Preset(registry.ActivePreset()); ok {
		if _, ok := preset.Lookup(actionID); ok {
			return "preset"
		}
	}
	if registry.ResolvedBinding(actionID) == "" {
		return "unbound"
	}
	return "default"
}

// buildKeyRows lists bindings visible in context whose id matches the glob pattern
func buildKeyRows(registry *shortcuts.Registry, context, pattern string) ([]keyRow, error) {
	var matcher glob.Glob
	if pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
		}
		matcher = g
	}

	overrides := registry.CustomOverrides()
	var rows []keyRow
	for _, b := range registry.AllBindings(context) {
		if matcher != nil && !matcher.Match(b.ID) {
			continue
		}
		rows = append(rows, keyRow{
			Action:   b.ID,
			Category: b.Category.Title(),
			Combo:    registry.ResolvedBinding(b.ID),
			Context:  contextLabel(b.Context),
			Label:    b.Label,
			Source:   bindingSource(registry, b.ID, overrides),
		})
	}
	return rows, nil
}

func writeKeyRows(w io.Writer, rows []keyRow, format string) error {
	if format == "json" {
		if rows == nil {
			rows = []keyRow{}
		}
		return writeJSON(w, rows)
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{r.Action, r.Combo, r.Source, r.Context, r.Category, r.Label}
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"ACTION", "KEY", "SOURCE", "CONTEXT", "CATEGORY", "LABEL"}, table))
	return err
}

// KeysListCmd lists actions and their resolved keys
type KeysListCmd struct {
	Context string `help:"Only show bindings reachable in this context (empty shows all)"`
	Filter  string `help:"Glob over action ids, e.g. 'review.*'" short:"f"`
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (k *KeysListCmd) Run(cli *CLI) error {
	service := cli.Container.KeymapService
	loadKeymap(context.Background(), service)

	rows, err := buildKeyRows(service.Registry(), k.Context, k.Filter)
	if err != nil {
		return err
	}
	if k.Format != "json" {
		fmt.Printf("User: %s  Preset: %s\n", service.User(), service.Registry().ActivePreset())
	}
	return writeKeyRows(os.Stdout, rows, k.Format)
}

// KeysSetCmd binds a combo to an action
type KeysSetCmd struct {
	Action string `arg:"" help:"Action id, e.g. navigation.nextFrame"`
	Combo  string `arg:"" help:"Key combo, e.g. ctrl+shift+z"`
	Force  bool   `help:"Bind even when other actions already use the combo"`
}

// Run executes the set command
func (k *KeysSetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	service := cli.Container.KeymapService
	loadKeymap(ctx, service)

	conflicts, err := service.SetBinding(ctx, k.Action, k.Combo, k.Force)
	if errors.Is(err, domain.ErrBindingConflict) {
		fmt.Fprintln(os.Stderr, renderConflicts(service.Registry(), conflicts, nil))
		return fmt.Errorf("%w (use --force to bind anyway)", err)
	}
	if err != nil {
		return err
	}

	for _, c := range conflicts {
		fmt.Printf("Warning: %s is still bound to the same key\n", c.ID)
	}
	fmt.Printf("%s → %s\n", k.Action, service.Registry().ResolvedBinding(k.Action))
	return nil
}

// KeysUnsetCmd removes a custom binding
type KeysUnsetCmd struct {
	Action string `arg:"" help:"Action id"`
}

// Run executes the unset command
func (k *KeysUnsetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	service := cli.Container.KeymapService
	loadKeymap(ctx, service)

	if err := service.UnsetBinding(ctx, k.Action); err != nil {
		return err
	}
	fmt.Printf("%s → %s (preset)\n", k.Action, service.Registry().ResolvedBinding(k.Action))
	return nil
}

// KeysResetCmd removes every custom binding
type KeysResetCmd struct{}

// Run executes the reset command
func (k *KeysResetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	service := cli.Container.KeymapService
	loadKeymap(ctx, service)

	if err := service.ResetBindings(ctx); err != nil {
		return err
	}
	fmt.Printf("Custom bindings removed; preset %s is in effect\n", service.Registry().ActivePreset())
	return nil
}

// KeysPresetCmd shows or switches the active preset
type KeysPresetCmd struct {
	Name string `arg:"" optional:"" help:"Preset to activate (prompted when omitted)"`
}

// Run executes the preset command
func (k *KeysPresetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	service := cli.Container.KeymapService
	registry := service.Registry()
	loadKeymap(ctx, service)

	name := k.Name
	if name == "" {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Println(registry.ActivePreset())
			return nil
		}

		name = registry.ActivePreset()
		err := huh.NewSelect[string]().
			Title("Preset").
			Description("Custom bindings stay on top of the preset").
			Options(huh.NewOptions(registry.Presets()...)...).
			Value(&name).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("failed to pick preset: %w", err)
		}
	}

	if err := service.SetPreset(ctx, name); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Presets(), ", "))
	}
	fmt.Printf("Preset %s active\n", name)
	return nil
}

// KeysExportCmd writes the keymap document
type KeysExportCmd struct {
	Format string `help:"Document format" enum:"json,toml,yaml" default:"json"`
	Output string `help:"Write to this file instead of stdout" short:"o" type:"path"`
}

// Run executes the export command
func (k *KeysExportCmd) Run(cli *CLI) error {
	service := cli.Container.KeymapService
	loadKeymap(context.Background(), service)

	data, err := service.Export(k.Format)
	if err != nil {
		return err
	}
	if k.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(k.Output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", k.Output, err)
	}
	fmt.Printf("Keymap exported to %s\n", k.Output)
	return nil
}

// KeysImportCmd replaces the keymap with a document
type KeysImportCmd struct {
	File   string `arg:"" help:"Keymap document" type:"existingfile"`
	Format string `help:"Document format: json, toml or yaml (detected from the extension when omitted)"`
}

// Run executes the import command
func (k *KeysImportCmd) Run(cli *CLI) error {
	format := k.Format
	if format == "" {
		detected, err := formatFromPath(k.File)
		if err != nil {
			return err
		}
		format = detected
	}

	data, err := os.ReadFile(k.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", k.File, err)
	}

	keymap, err := cli.Container.KeymapService.Import(context.Background(), data, format)
	if err != nil {
		return err
	}
	fmt.Printf("Imported preset %s with %d custom bindings\n", keymap.ActivePreset, len(keymap.CustomBindings))
	return nil
}

// formatFromPath maps a file extension to an export format
func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return services.FormatJSON, nil
	case ".toml":
		return services.FormatTOML, nil
	case ".yaml", ".yml":
		return services.FormatYAML, nil
	}
	return "", fmt.Errorf("cannot tell the format of %s; pass --format", path)
}

// KeysConflictsCmd shows the bindings a combo resolves to
type KeysConflictsCmd struct {
	Combo   string `arg:"" help:"Key combo, e.g. Escape"`
	Context string `help:"Context to resolve in (empty checks every binding)"`
}

// Run executes the conflicts command
func (k *KeysConflictsCmd) Run(cli *CLI) error {
	service := cli.Container.KeymapService
	registry := service.Registry()
	loadKeymap(context.Background(), service)

	combo, err := shortcuts.ParseCombo(k.Combo)
	if err != nil {
		return err
	}

	conflicts := registry.Conflicts(combo, k.Context)
	if len(conflicts) == 0 {
		fmt.Printf("No action uses %s in %s\n", combo, contextLabel(k.Context))
		return nil
	}

	var winner *domain.ShortcutBinding
	if b, ok := registry.ShortcutForKey(combo, k.Context); ok {
		winner = &b
	}
	fmt.Println(renderConflicts(registry, conflicts, winner))
	return nil
}

// renderConflicts tabulates bindings sharing a combo, marking the one a key press would trigger
func renderConflicts(registry *shortcuts.Registry, conflicts []domain.ShortcutBinding, winner *domain.ShortcutBinding) string {
	rows := make([][]string, len(conflicts))
	for i, c := range conflicts {
		mark := ""
		if winner != nil && winner.ID == c.ID {
			mark = "●"
		}
		rows[i] = []string{mark, c.ID, registry.ResolvedBinding(c.ID), contextLabel(c.Context), c.Label}
	}
	return renderTable([]string{"", "ACTION", "KEY", "CONTEXT", "LABEL"}, rows)
}
