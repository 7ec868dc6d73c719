package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cutdesk/internal/config"
	"cutdesk/internal/dispatch"
	"cutdesk/internal/jogdial"
	"cutdesk/internal/logging"
	"cutdesk/internal/services"
	"cutdesk/internal/shortcuts"
	"cutdesk/internal/theme"
)

type uiState int

const (
	stateDesk uiState = iota
	stateEditor
	stateHelp
)

const (
	defaultFrames        = 240
	defaultSegmentFrames = 60
	historyLimit         = 100
	timelineWidth        = 48
)

// Screen position of the dial's top-left cell: two header lines, a blank line, then the panel border and padding.
const (
	dialOriginX = 2
	dialOriginY = 4
)

// Options configures a Model
type Options struct {
	DevMode       bool
	Engine        *jogdial.Engine
	Frames        int
	Handler       *dispatch.Handler // nil creates a handler for this model alone
	SegmentFrames int
	Service       *services.KeymapService
	Settings      <-chan *config.Settings // optional live settings reloads
}

// focusTree holds the dispatch targets of the desk's panels
type focusTree struct {
	generation *dispatch.Node
	notes      *dispatch.Node
	review     *dispatch.Node
	root       *dispatch.Node
	timeline   *dispatch.Node
}

func newFocusTree() focusTree {
	root := dispatch.NewRoot("desk")
	review := root.Scoped("review", shortcuts.ContextReview)
	return focusTree{
		generation: root.Scoped("generation", shortcuts.ContextGeneration),
		notes:      review.Editable("notes"),
		review:     review,
		root:       root,
		timeline:   root.Scoped("timeline", shortcuts.ContextTimeline),
	}
}

// Model is the scrubbing desk: timeline, jog dial, review queue and generation panel,
// driven by shortcuts resolved through the registry.
type Model struct {
	ctx      context.Context
	desk     Desk
	devMode  bool
	editor   *KeymapEditor
	engine   *jogdial.Engine
	err      error
	errSeq   int
	focus    int // index into panels
	handler  *dispatch.Handler
	height   int
	help     help.Model
	history  *History
	jog      *JogWidget
	keys     KeyMap
	notes    textinput.Model
	panels   []*dispatch.Node
	pending  []tea.Cmd // commands queued by actions during one Update
	registry *shortcuts.Registry
	service  *services.KeymapService
	settings <-chan *config.Settings
	state    uiState
	steps    *stepQueue
	target   dispatch.Target
	ticking  bool
	tree     focusTree
	width    int
}

// NewModel creates the desk and registers its actions in the service's registry
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Frames <= 0 {
		opts.Frames = defaultFrames
	}
	if opts.SegmentFrames <= 0 {
		opts.SegmentFrames = defaultSegmentFrames
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Engine == nil {
		opts.Engine = jogdial.NewEngine()
	}

	notes := textinput.New()
	notes.Prompt = "note> "
	notes.Placeholder = "what needs fixing?"
	notes.CharLimit = 200
	notes.Width = 40

	registry := opts.Service.Registry()
	tree := newFocusTree()

	m := &Model{
		ctx:      ctx,
		desk:     NewDesk(opts.Frames, opts.SegmentFrames),
		devMode:  opts.DevMode,
		engine:   opts.Engine,
		handler:  opts.Handler,
		help:     help.New(),
		history:  NewHistory(historyLimit),
		jog:      NewJogWidget(opts.Engine),
		notes:    notes,
		panels:   []*dispatch.Node{tree.timeline, tree.review, tree.generation},
		registry: registry,
		service:  opts.Service,
		settings: opts.Settings,
		state:    stateDesk,
		steps:    newStepQueue(),
		tree:     tree,
	}
	if m.handler == nil {
		m.handler = dispatch.NewHandler(registry)
	}

	actions := m.actions()
	for _, spec := range shortcuts.Catalog() {
		registry.Register(spec.Bind(actions[spec.ID]))
	}

	m.jog.SetOrigin(dialOriginX, dialOriginY)
	m.engine.SetOnStep(m.onStep)
	m.setFocus(0)
	return m
}

// onStep runs on the engine's goroutine
func (m *Model) onStep(dir jogdial.Direction, frames int) {
	m.steps.push(dir, frames)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.steps.wait(m.ctx), waitForSettings(m.settings))
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.editor != nil {
			m.editor.Update(msg)
		}
		return m, nil

	case StepMsg:
		m.desk.Step(msg.Direction, msg.Frames)
		return m, m.steps.wait(m.ctx)

	case SettingsMsg:
		m.applySettings(msg.Settings)
		return m, waitForSettings(m.settings)

	case playbackTickMsg:
		m.desk.Advance()
		if !m.desk.Playing() {
			m.ticking = false
			return m, nil
		}
		return m, playbackTick()

	case generationTickMsg:
		if msg.attempt == m.desk.Generation.Attempt && m.desk.AdvanceGeneration() {
			return m, generationTick(msg.attempt)
		}
		return m, nil

	case clearErrorMsg:
		if msg.seq == m.errSeq {
			m.err = nil
		}
		return m, nil

	case keymapSavedMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		logging.Logger.Info("Keymap saved from desk", "what", msg.what)
		return m, nil

	case tea.MouseMsg:
		if m.state == stateDesk {
			m.jog.HandleMouse(msg)
		}
		return m, nil
	}

	if m.state == stateEditor {
		return m.updateEditor(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.target == m.tree.notes {
		return m.updateNotes(keyMsg)
	}
	return m.handleKey(keyMsg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.pending = nil
	if !m.handler.HandleKeyMsg(msg, m.target) && msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	cmds := m.pending
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.history.Record(m.desk)
		m.desk.SetNote(strings.TrimSpace(m.notes.Value()))
		m.setFocus(m.focus)
		return m, nil
	case "esc":
		m.setFocus(m.focus)
		return m, nil
	case "ctrl+c":
		return m, m.quit()
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.editor.Update(msg)
	if m.editor.Completed {
		m.editor = nil
		m.state = stateDesk
		m.rebuildKeys()
		return m, nil
	}
	return m, cmd
}

func (m *Model) applySettings(settings *config.Settings) {
	if settings == nil {
		return
	}
	m.engine.SetConfig(settings.Jog.Partial())
	logging.Logger.Info("Applied reloaded settings", "jog", m.engine.Config())
}

// setFocus focuses panel i, leaving the notes field if it was active
func (m *Model) setFocus(i int) {
	n := len(m.panels)
	m.focus = ((i % n) + n) % n
	m.target = m.panels[m.focus]
	m.notes.Blur()
	m.rebuildKeys()
}

func (m *Model) focusNotes() {
	seg, ok := m.desk.CurrentSegment()
	if !ok {
		return
	}
	m.notes.SetValue(seg.Note)
	m.notes.CursorEnd()
	m.notes.Focus()
	m.target = m.tree.notes
}

func (m *Model) rebuildKeys() {
	m.keys = NewKeyMap(m.registry, dispatch.ScopeOf(m.target))
}

func (m *Model) showError(err error) tea.Cmd {
	m.err = err
	m.errSeq++
	return clearErrorAfter(m.errSeq)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// Close disposes the jog dial and releases the goroutine waiting for its steps.
// It is safe to call more than once.
func (m *Model) Close() {
	m.engine.Dispose()
	m.steps.close()
}

func (m *Model) startPlayback() {
	if m.desk.Playing() && !m.ticking {
		m.ticking = true
		m.queue(playbackTick())
	}
}

// edit records an undo step and applies fn to the desk
func (m *Model) edit(fn func(d *Desk)) func() {
	return func() {
		m.history.Record(m.desk)
		fn(&m.desk)
	}
}

func (m *Model) actions() map[string]func() {
	return map[string]func(){
		"general.cancel": func() {
			if m.state == stateHelp {
				m.state = stateDesk
				return
			}
			m.desk.Stop()
		},
		"general.help": func() {
			if m.state == stateHelp {
				m.state = stateDesk
				return
			}
			m.state = stateHelp
		},
		"general.keymapEditor": func() {
			m.editor = NewKeymapEditor(m.ctx, m.service)
			m.state = stateEditor
			m.queue(m.editor.Init())
		},
		"general.quit": func() { m.queue(m.quit()) },
		"general.redo": func() {
			if desk, ok := m.history.Redo(m.desk); ok {
				m.desk = desk
			}
		},
		"general.save": func() {
			service := m.service
			ctx := m.ctx
			m.queue(func() tea.Msg {
				return keymapSavedMsg{err: service.Save(ctx), what: "keymap"}
			})
		},
		"general.undo": func() {
			if desk, ok := m.history.Undo(m.desk); ok {
				m.desk = desk
			}
		},

		"navigation.back10":    func() { m.desk.StepFrames(-10) },
		"navigation.forward10": func() { m.desk.StepFrames(10) },
		"navigation.goToEnd":   func() { m.desk.Seek(m.desk.Total - 1) },
		"navigation.goToStart": func() { m.desk.Seek(0) },
		"navigation.nextFrame": func() { m.desk.StepFrames(1) },
		"navigation.nextPanel": func() { m.setFocus(m.focus + 1) },
		"navigation.prevFrame": func() { m.desk.StepFrames(-1) },
		"navigation.prevPanel": func() { m.setFocus(m.focus - 1) },

		"playback.markIn":  m.edit((*Desk).MarkIn),
		"playback.markOut": m.edit((*Desk).MarkOut),
		"playback.playPause": func() {
			m.desk.TogglePlay()
			m.startPlayback()
		},
		"playback.shuttleForward": func() {
			m.desk.ShuttleForward()
			m.startPlayback()
		},
		"playback.shuttleReverse": func() {
			m.desk.ShuttleReverse()
			m.startPlayback()
		},
		"playback.shuttleStop": func() { m.desk.Stop() },
		"playback.toggleLoop":  func() { m.desk.Loop = !m.desk.Loop },

		"review.approve":  m.edit(func(d *Desk) { d.SetVerdict(VerdictApproved) }),
		"review.flag":     m.edit(func(d *Desk) { d.SetVerdict(VerdictFlagged) }),
		"review.nextItem": func() { m.desk.NextItem() },
		"review.note":     m.focusNotes,
		"review.reject":   m.edit(func(d *Desk) { d.SetVerdict(VerdictRejected) }),

		"generation.cancel": func() { m.desk.CancelGeneration() },
		"generation.generate": func() {
			if m.desk.Generate() {
				m.queue(generationTick(m.desk.Generation.Attempt))
			}
		},
		"generation.regenerate": func() {
			m.desk.Regenerate()
			m.queue(generationTick(m.desk.Generation.Attempt))
		},
	}
}

// View implements tea.Model
func (m *Model) View() string {
	desk := m.deskView()

	switch m.state {
	case stateHelp:
		content := buildHelpContent(m.keys, m.scopeName())
		return compositeOverlay(desk, theme.EditorBorderStyle.Render(content), m.width, m.height)
	case stateEditor:
		return compositeOverlay(desk, m.editor.View(), m.width, m.height)
	}
	return desk
}

func (m *Model) deskView() string {
	var b strings.Builder

	b.WriteString(renderHeader(m.devMode, m.service.User(), m.registry.ActivePreset()))
	b.WriteString("\n")

	dial := theme.PanelStyle.Render(m.jog.View())
	timeline := m.panel(m.tree.timeline, "Timeline", m.timelineView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, dial, timeline))
	b.WriteString("\n")

	review := m.panel(m.tree.review, "Review", m.reviewView())
	generation := m.panel(m.tree.generation, "Generation", m.generationView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, review, generation))
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(theme.ErrorStyle.Render(formatErrorForDisplay(m.err, max(m.width, 40))))
	}
	return b.String()
}

func (m *Model) panel(node *dispatch.Node, title, body string) string {
	style := theme.PanelStyle
	if m.panels[m.focus] == node {
		style = theme.FocusedPanelStyle
	}
	return style.Render(theme.PanelTitleStyle.Render(title) + "\n" + body)
}

func (m *Model) scopeName() string {
	if scope := dispatch.ScopeOf(m.target); scope != "" {
		return scope
	}
	return "global"
}

func (m *Model) timelineView() string {
	d := m.desk
	position := func(frame int) int {
		if d.Total <= 1 {
			return 0
		}
		return frame * (timelineWidth - 1) / (d.Total - 1)
	}

	head := []rune(strings.Repeat(" ", timelineWidth))
	head[position(d.Frame)] = '▼'

	var bar strings.Builder
	for i := range timelineWidth {
		switch {
		case d.In != noMark && i == position(d.In):
			bar.WriteString(theme.MarkStyle.Render("["))
		case d.Out != noMark && i == position(d.Out):
			bar.WriteString(theme.MarkStyle.Render("]"))
		case d.HasRange() && i > position(d.In) && i < position(d.Out):
			bar.WriteString(theme.RangeStyle.Render("━"))
		default:
			bar.WriteString(theme.TrackStyle.Render("─"))
		}
	}

	transport := "■ stopped"
	switch {
	case d.Shuttle > 0:
		transport = fmt.Sprintf("▶ x%d", d.Shuttle)
	case d.Shuttle < 0:
		transport = fmt.Sprintf("◀ x%d", -d.Shuttle)
	}
	if d.Loop {
		transport += "  ⟲ loop"
	}

	marks := "no marks"
	if d.In != noMark || d.Out != noMark {
		marks = fmt.Sprintf("in %s  out %s", markLabel(d.In), markLabel(d.Out))
	}

	return theme.PlayheadStyle.Render(string(head)) + "\n" +
		bar.String() + "\n" +
		fmt.Sprintf("frame %04d/%04d  %s", d.Frame, d.Total-1, transport) + "\n" +
		theme.MutedStyle.Render(marks)
}

func markLabel(frame int) string {
	if frame == noMark {
		return "----"
	}
	return fmt.Sprintf("%04d", frame)
}

func (m *Model) reviewView() string {
	var b strings.Builder
	for i, seg := range m.desk.Segments {
		cursor := "  "
		if i == m.desk.Current {
			cursor = "› "
		}
		line := fmt.Sprintf("%s%s %04d-%04d %s", cursor, seg.Name, seg.Start, seg.End, verdictLabel(seg.Verdict))
		if seg.Note != "" {
			line += theme.MutedStyle.Render("  “" + seg.Note + "”")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.target == m.tree.notes {
		b.WriteString(m.notes.View())
	}
	return strings.TrimRight(b.String(), "\n")
}

func verdictLabel(v Verdict) string {
	switch v {
	case VerdictApproved:
		return theme.ApprovedStyle.Render("✓ approved")
	case VerdictFlagged:
		return theme.FlaggedStyle.Render("⚑ flagged")
	case VerdictRejected:
		return theme.RejectedStyle.Render("✗ rejected")
	}
	return theme.PendingStyle.Render("· pending")
}

func (m *Model) generationView() string {
	g := m.desk.Generation
	const barWidth = 20
	filled := g.Progress * barWidth / 100

	status := string(g.Status)
	if g.Attempt > 0 {
		status = fmt.Sprintf("%s (attempt %d)", g.Status, g.Attempt)
	}
	return status + "\n" +
		theme.RangeStyle.Render(strings.Repeat("█", filled)) +
		theme.TrackStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %3d%%", g.Progress)
}
