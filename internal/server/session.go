package server

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"cutdesk/internal/jogdial"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
	"cutdesk/internal/services"
	"cutdesk/internal/shortcuts"
	"cutdesk/internal/ui"
)

// deskSession holds the resources of one connected user
type deskSession struct {
	engine    *jogdial.Engine
	id        string
	model     *ui.Model
	startTime time.Time
	store     ports.KeymapStore
	user      string
}

// teaHandler creates a Bubbletea model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	desk, err := s.openSession(sess.Context(), sess.User())
	if err != nil {
		logging.Logger.Error("Failed to open SSH session",
			"error", err,
			"user", sess.User(),
			"remote_addr", sess.RemoteAddr().String())
		return errorModel{err}, nil
	}

	logging.Logger.Info("New SSH session",
		"session_id", desk.id,
		"user", desk.user,
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	go func() {
		<-sess.Context().Done()
		s.closeSession(desk.id)
	}()

	return desk.model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// openSession builds a desk for user with its keymap loaded and registers it as live
func (s *Server) openSession(ctx context.Context, user string) (*deskSession, error) {
	store, err := s.newStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open keymap store: %w", err)
	}

	settings := s.currentSettings()

	var opts []shortcuts.Option
	if settings.DefaultPreset != "" {
		opts = append(opts, shortcuts.WithDefaultPreset(settings.DefaultPreset))
	}
	service := services.NewKeymapService(store, shortcuts.NewRegistry(opts...), user)
	if err := service.Load(ctx); err != nil {
		logging.Logger.Warn("Using default keymap for SSH session", "user", user, "error", err)
	}

	engine := jogdial.NewEngine()
	engine.SetConfig(settings.Jog.Partial())

	desk := &deskSession{
		engine:    engine,
		id:        uuid.New().String(),
		startTime: time.Now(),
		store:     store,
		user:      user,
	}
	desk.model = ui.NewModel(ctx, ui.Options{Engine: engine, Service: service})

	s.mu.Lock()
	s.sessions[desk.id] = desk
	s.mu.Unlock()
	return desk, nil
}

// closeSession releases a session's dial and store
func (s *Server) closeSession(id string) {
	s.mu.Lock()
	desk, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	duration := time.Since(desk.startTime)
	desk.model.Close()
	if err := desk.store.Close(); err != nil {
		logging.Logger.Error("Failed to close store for SSH session",
			"error", err,
			"session_id", id,
			"duration", duration.String())
	}

	logging.Logger.Info("SSH session ended",
		"session_id", id,
		"user", desk.user,
		"duration", duration.String())
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
