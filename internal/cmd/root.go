package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"cutdesk/internal/config"
	"cutdesk/internal/dispatch"
	"cutdesk/internal/jogdial"
	"cutdesk/internal/logging"
	"cutdesk/internal/ui"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	User        string           `help:"User whose keymap is loaded (overrides $CUTDESK_USER and settings)"`

	Run      RunCmd      `cmd:"" help:"Start the scrubbing desk (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the desk over SSH"`
	Keys     KeysCmd     `cmd:"keys" help:"Inspect and edit keyboard shortcuts"`
	Presets  PresetsCmd  `cmd:"presets" help:"List shortcut presets"`
	Jog      JogCmd      `cmd:"jog" help:"Jog dial tools"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta, set)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	if c.settings == nil {
		c.settings = &config.Settings{}
	}

	// Precedence: CLI flags > env vars > settings.json > defaults
	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("CUTDESK_MAX_LOG_FILES"); !hasEnv && c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("CUTDESK_DEBUG"); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
			c.Debug = true
		}
	}
	if c.User == "" {
		c.User = os.Getenv("CUTDESK_USER")
	}
	if c.User == "" {
		c.User = c.settings.UserName()
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Exported so the SSH server's gorm logger and any child process share the log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("CUTDESK_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("CUTDESK_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("CUTDESK_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Container is created after logging so gorm's logger has somewhere to write
	container, err := NewContainer(c.settings, c.User)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// RunCmd starts the TUI application
type RunCmd struct {
	Dev           bool `help:"Enable development mode (shows version info in the header)"`
	Frames        int  `help:"Number of frames on the timeline" default:"240"`
	SegmentFrames int  `help:"Frames per review segment" default:"60"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("cutdesk needs an interactive terminal; use 'cutdesk keys' for scripting")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logging.Logger.Info("Starting cutdesk TUI", "user", cli.User)

	service := cli.Container.KeymapService
	if err := service.Load(ctx); err != nil {
		logging.Logger.Warn("Failed to load keymap, using defaults", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: failed to load keymap, using defaults: %v\n", err)
	}

	engine := jogdial.NewEngine()
	engine.SetConfig(cli.settings.Jog.Partial())
	defer engine.Dispose()

	updates, err := config.Watch(ctx, config.GetSettingsPath())
	if err != nil {
		logging.Logger.Warn("Settings will not reload while running", "error", err)
	}

	model := ui.NewModel(ctx, ui.Options{
		DevMode:       r.Dev,
		Engine:        engine,
		Frames:        r.Frames,
		Handler:       dispatch.Install(service.Registry()),
		SegmentFrames: r.SegmentFrames,
		Service:       service,
		Settings:      updates,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
