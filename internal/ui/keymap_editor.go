package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sahilm/fuzzy"

	"cutdesk/internal/domain"
	"cutdesk/internal/logging"
	"cutdesk/internal/services"
	"cutdesk/internal/shortcuts"
	"cutdesk/internal/theme"
)

const editorVisibleRows = 14

type editorRow struct {
	binding    domain.ShortcutBinding
	combo      string
	matched    []int // matched rune positions in the row's search text
	overridden bool
}

func (r editorRow) searchText() string {
	return r.binding.ID + " " + r.binding.Label
}

// pendingBinding is a captured combo waiting for confirmation because it collides with other bindings
type pendingBinding struct {
	actionID  string
	combo     string
	conflicts []domain.ShortcutBinding
}

// KeymapEditor lets the user search actions, capture new combos and switch presets.
// Its own navigation keys are fixed so a broken keymap can always be repaired.
type KeymapEditor struct {
	Completed   bool
	capturing   bool
	conflict    *pendingBinding
	ctx         context.Context
	err         error
	filter      textinput.Model
	picker      *huh.Form
	pickerValue string
	rows        []editorRow
	selected    int
	service     *services.KeymapService
	status      string
	visible     []editorRow
}

// NewKeymapEditor creates an editor over the service's registry
func NewKeymapEditor(ctx context.Context, service *services.KeymapService) *KeymapEditor {
	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.PromptStyle = theme.FilterPromptStyle
	ti.Placeholder = "action or label"
	ti.CharLimit = 40
	ti.Width = 30
	ti.Focus()

	e := &KeymapEditor{
		ctx:     ctx,
		filter:  ti,
		service: service,
	}
	e.refresh()
	return e
}

// Init implements tea.Model
func (e *KeymapEditor) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (e *KeymapEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e.picker != nil {
		return e.updatePicker(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		e.filter, cmd = e.filter.Update(msg)
		return e, cmd
	}

	switch {
	case e.conflict != nil:
		return e.updateConflict(keyMsg)
	case e.capturing:
		return e.updateCapture(keyMsg)
	}

	switch keyMsg.String() {
	case "esc":
		if e.filter.Value() != "" {
			e.filter.SetValue("")
			e.applyFilter()
			return e, nil
		}
		e.Completed = true
		return e, nil
	case "ctrl+c":
		e.Completed = true
		return e, nil
	case "up":
		e.selected = max(0, e.selected-1)
		return e, nil
	case "down":
		e.selected = min(len(e.visible)-1, e.selected+1)
		return e, nil
	case "enter":
		if _, ok := e.current(); ok {
			e.capturing = true
			e.err = nil
			e.status = ""
		}
		return e, nil
	case "ctrl+d", "delete":
		e.unsetSelected()
		return e, nil
	case "ctrl+r":
		e.resetAll()
		return e, nil
	case "ctrl+p":
		return e, e.openPicker()
	}

	var cmd tea.Cmd
	e.filter, cmd = e.filter.Update(msg)
	e.applyFilter()
	return e, cmd
}

func (e *KeymapEditor) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		e.capturing = false
		e.status = "Capture cancelled"
		return e, nil
	}

	combo, ok := shortcuts.ComboFromKeyMsg(msg)
	if !ok {
		return e, nil
	}

	row, _ := e.current()
	e.capturing = false
	e.assign(row.binding.ID, combo, false)
	return e, nil
}

func (e *KeymapEditor) updateConflict(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := e.conflict
	e.conflict = nil

	if msg.String() == "enter" {
		e.assign(pending.actionID, pending.combo, true)
		return e, nil
	}
	e.status = "Kept " + pending.actionID + " unchanged"
	return e, nil
}

func (e *KeymapEditor) assign(actionID, combo string, force bool) {
	conflicts, err := e.service.SetBinding(e.ctx, actionID, combo, force)
	switch {
	case errors.Is(err, domain.ErrBindingConflict):
		e.conflict = &pendingBinding{actionID: actionID, combo: combo, conflicts: conflicts}
		return
	case err != nil:
		logging.Logger.Error("Failed to set binding", "action", actionID, "error", err)
		e.err = err
	default:
		e.status = fmt.Sprintf("%s → %s", actionID, displayCombo(e.service.Registry().ResolvedBinding(actionID)))
	}
	e.refresh()
}

func (e *KeymapEditor) unsetSelected() {
	row, ok := e.current()
	if !ok || !row.overridden {
		return
	}
	if err := e.service.UnsetBinding(e.ctx, row.binding.ID); err != nil {
		e.err = err
		return
	}
	e.status = row.binding.ID + " follows the preset again"
	e.refresh()
}

func (e *KeymapEditor) resetAll() {
	if err := e.service.ResetBindings(e.ctx); err != nil {
		e.err = err
		return
	}
	e.status = "All custom bindings removed"
	e.refresh()
}

func (e *KeymapEditor) openPicker() tea.Cmd {
	registry := e.service.Registry()
	e.pickerValue = registry.ActivePreset()
	e.picker = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preset").
				Description("Custom bindings stay on top of the preset").
				Options(huh.NewOptions(registry.Presets()...)...).
				Value(&e.pickerValue),
		),
	)
	return e.picker.Init()
}

func (e *KeymapEditor) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && (keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c") {
		e.picker = nil
		return e, nil
	}

	form, cmd := e.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.picker = f
	}

	switch e.picker.State {
	case huh.StateCompleted:
		e.picker = nil
		if err := e.service.SetPreset(e.ctx, e.pickerValue); err != nil {
			e.err = err
		} else {
			e.status = "Preset " + e.pickerValue + " active"
		}
		e.refresh()
		return e, nil
	case huh.StateAborted:
		e.picker = nil
		return e, nil
	}
	return e, cmd
}

// refresh rebuilds the rows from the registry, keeping the filter
func (e *KeymapEditor) refresh() {
	registry := e.service.Registry()
	overrides := registry.CustomOverrides()

	bindings := registry.AllBindings(domain.GlobalContext)
	e.rows = make([]editorRow, 0, len(bindings))
	for _, b := range bindings {
		_, overridden := overrides[b.ID]
		e.rows = append(e.rows, editorRow{
			binding:    b,
			combo:      registry.ResolvedBinding(b.ID),
			overridden: overridden,
		})
	}
	e.applyFilter()
}

func (e *KeymapEditor) applyFilter() {
	query := strings.TrimSpace(e.filter.Value())
	if query == "" {
		e.visible = e.rows
	} else {
		sources := make([]string, len(e.rows))
		for i, row := range e.rows {
			sources[i] = row.searchText()
		}
		matches := fuzzy.Find(query, sources)
		e.visible = make([]editorRow, 0, len(matches))
		for _, match := range matches {
			row := e.rows[match.Index]
			row.matched = match.MatchedIndexes
			e.visible = append(e.visible, row)
		}
	}
	e.selected = max(0, min(e.selected, len(e.visible)-1))
}

func (e *KeymapEditor) current() (editorRow, bool) {
	if e.selected < 0 || e.selected >= len(e.visible) {
		return editorRow{}, false
	}
	return e.visible[e.selected], true
}

// View implements tea.Model
func (e *KeymapEditor) View() string {
	if e.picker != nil {
		return theme.EditorBorderStyle.Render(e.picker.View())
	}

	var b strings.Builder
	b.WriteString(theme.PanelTitleStyle.Render("Keymap · preset " + e.service.Registry().ActivePreset()))
	b.WriteString("\n")
	b.WriteString(e.filter.View())
	b.WriteString("\n\n")

	start := max(0, min(e.selected-editorVisibleRows/2, len(e.visible)-editorVisibleRows))
	end := min(len(e.visible), start+editorVisibleRows)
	for i := start; i < end; i++ {
		b.WriteString(e.renderRow(e.visible[i], i == e.selected))
		b.WriteString("\n")
	}
	if len(e.visible) == 0 {
		b.WriteString(theme.MutedStyle.Render("no matching actions"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(e.footer())
	return theme.EditorBorderStyle.Render(b.String())
}

func (e *KeymapEditor) renderRow(row editorRow, selected bool) string {
	label := highlightMatches(row.searchText(), row.matched)
	combo := displayCombo(row.combo)
	if row.overridden {
		combo = theme.OverrideStyle.Render(combo + "*")
	}
	scope := "global"
	if !row.binding.IsGlobal() {
		scope = row.binding.Context
	}

	line := fmt.Sprintf("%-14s %-16s %s", combo, scope, label)
	if selected {
		return theme.EditorRowSelectedStyle.Render("› " + line)
	}
	return theme.EditorRowStyle.Render("  " + line)
}

func (e *KeymapEditor) footer() string {
	switch {
	case e.conflict != nil:
		ids := make([]string, len(e.conflict.conflicts))
		for i, c := range e.conflict.conflicts {
			ids[i] = c.ID
		}
		return theme.ErrorStyle.Render(fmt.Sprintf("%s is used by %s", displayCombo(e.conflict.combo), strings.Join(ids, ", "))) +
			"\n" + theme.MutedStyle.Render("enter: bind anyway • any other key: keep")
	case e.capturing:
		row, _ := e.current()
		return theme.CaptureStyle.Render("Press the new combo for " + row.binding.ID + " (esc cancels)")
	case e.err != nil:
		return theme.ErrorStyle.Render(formatErrorForDisplay(e.err, 60))
	case e.status != "":
		return theme.MutedStyle.Render(e.status)
	}
	return theme.MutedStyle.Render("enter: rebind • ctrl+d: unset • ctrl+r: reset all • ctrl+p: preset • esc: close")
}

// highlightMatches styles the runes of s starting at the given byte offsets
func highlightMatches(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(theme.MatchStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
