package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"cutdesk/internal/config"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
	"cutdesk/internal/server"
	"cutdesk/internal/shortcuts"
)

// ServeCmd serves the desk over SSH
type ServeCmd struct {
	Host string `help:"Host to listen on (overrides $CUTDESK_SSH_HOST and settings)"`
	Port string `help:"Port to listen on (overrides $CUTDESK_SSH_PORT and settings)"`
}

// resolveListen applies CLI flag > env var > settings.json > default
func resolveListen(flag, env, setting, fallback string) string {
	if flag != "" {
		return flag
	}
	if value := os.Getenv(env); value != "" {
		return value
	}
	if setting != "" {
		return setting
	}
	return fallback
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings
	host := resolveListen(s.Host, "CUTDESK_SSH_HOST", settings.SSHHost, config.DefaultSSHHost)
	port := resolveListen(s.Port, "CUTDESK_SSH_PORT", settings.SSHPort, config.DefaultSSHPort)

	newStore := func() (ports.KeymapStore, error) {
		return NewStore(settings)
	}
	srv, err := server.NewServer(host, port, newStore, settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("SSH server listening on %s\n", srv.Address())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		watchServerSettings(gctx, srv)
		return nil
	})
	return g.Wait()
}

// watchServerSettings pushes valid settings reloads into the server until ctx is done
func watchServerSettings(ctx context.Context, srv *server.Server) {
	if err := os.MkdirAll(config.GetHome(), 0755); err != nil {
		logging.Logger.Warn("Settings will not reload while serving", "error", err)
		return
	}
	updates, err := config.Watch(ctx, config.GetSettingsPath())
	if err != nil {
		logging.Logger.Warn("Settings will not reload while serving", "error", err)
		return
	}

	presets := shortcuts.DefaultPresets().Names()
	for settings := range updates {
		if err := settings.Validate(presets); err != nil {
			logging.Logger.Warn("Ignoring invalid settings reload", "error", err)
			continue
		}
		srv.ApplySettings(settings)
	}
}
