package cmd

import (
	"context"
	"fmt"
	"os"

	"cutdesk/internal/domain"
	"cutdesk/internal/shortcuts"
)

// PresetsCmd groups the preset commands
type PresetsCmd struct {
	List PresetsListCmd `cmd:"list" help:"List presets" default:"1"`
	Show PresetsShowCmd `cmd:"show" help:"Show the keys a preset assigns"`
}

// presetRow is one preset in 'presets list'
type presetRow struct {
	Active      bool   `json:"active"`
	Bindings    int    `json:"bindings"`
	Description string `json:"description"`
	Name        string `json:"name"`
}

func buildPresetRows(registry *shortcuts.Registry) []presetRow {
	names := registry.Presets()
	rows := make([]presetRow, 0, len(names))
	for _, name := range names {
		preset, _ := registry.Preset(name)
		rows = append(rows, presetRow{
			Active:      name == registry.ActivePreset(),
			Bindings:    len(preset.Bindings),
			Description: preset.Description,
			Name:        name,
		})
	}
	return rows
}

// PresetsListCmd lists presets
type PresetsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (p *PresetsListCmd) Run(cli *CLI) error {
	service := cli.Container.KeymapService
	loadKeymap(context.Background(), service)

	rows := buildPresetRows(service.Registry())
	if p.Format == "json" {
		return writeJSON(os.Stdout, rows)
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		active := ""
		if r.Active {
			active = "●"
		}
		table[i] = []string{active, r.Name, fmt.Sprintf("%d", r.Bindings), r.Description}
	}
	fmt.Println(renderTable([]string{"", "PRESET", "KEYS", "DESCRIPTION"}, table, 2))
	return nil
}

// PresetsShowCmd shows a preset's keys
type PresetsShowCmd struct {
	Name string `arg:"" help:"Preset name"`
}

// Run executes the show command
func (p *PresetsShowCmd) Run(cli *CLI) error {
	rows, err := presetKeyRows(cli.Container.KeymapService.Registry(), p.Name)
	if err != nil {
		return err
	}
	fmt.Println(renderTable([]string{"ACTION", "KEY", "LABEL"}, rows))
	return nil
}

// presetKeyRows lists every catalog action with the key the preset gives it.
// Actions the preset leaves alone show their catalog default in parentheses.
func presetKeyRows(registry *shortcuts.Registry, name string) ([][]string, error) {
	preset, ok := registry.Preset(name)
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, domain.ErrUnknownPreset)
	}

	var rows [][]string
	for _, spec := range shortcuts.Catalog() {
		key, ok := preset.Lookup(spec.ID)
		if !ok {
			key = "(" + spec.Key + ")"
		}
		rows = append(rows, []string{spec.ID, key, spec.Label})
	}
	return rows, nil
}
