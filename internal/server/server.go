package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"cutdesk/internal/config"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
)

const shutdownTimeout = 30 * time.Second

// StoreFactory opens the keymap store used by one SSH session
type StoreFactory func() (ports.KeymapStore, error)

// Server serves the desk over SSH. Every session gets its own registry, dial and keymap,
// loaded for the SSH user name.
type Server struct {
	authorizedKeysPath string
	host               string
	newStore           StoreFactory
	port               string
	wishServer         *ssh.Server

	mu       sync.Mutex
	sessions map[string]*deskSession
	settings *config.Settings
}

// NewServer creates a new SSH server instance
func NewServer(host, port string, newStore StoreFactory, settings *config.Settings) (*Server, error) {
	if settings == nil {
		settings = &config.Settings{}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	s := &Server{
		authorizedKeysPath: filepath.Join(homeDir, ".ssh", "authorized_keys"),
		host:               host,
		newStore:           newStore,
		port:               port,
		sessions:           make(map[string]*deskSession),
		settings:           settings,
	}

	sshDir := config.GetSSHDir()
	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.Address()),
		wish.WithHostKeyPath(filepath.Join(sshDir, "id_ed25519")),
		wish.WithPublicKeyAuth(s.authorize),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns host:port
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%s", s.host, s.port)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	logging.Logger.Info("Starting SSH server", "address", s.Address())

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve SSH: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server", "sessions", s.SessionCount())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}

// ApplySettings makes reloaded settings the base for new sessions and pushes
// the jog dial configuration into every live session.
func (s *Server) ApplySettings(settings *config.Settings) {
	if settings == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	partial := settings.Jog.Partial()
	for _, sess := range s.sessions {
		sess.engine.SetConfig(partial)
	}
	logging.Logger.Info("Applied reloaded settings to SSH sessions", "sessions", len(s.sessions))
}

// SessionCount returns the number of live sessions
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) currentSettings() *config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}
