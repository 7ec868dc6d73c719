package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"cutdesk/internal/logging"
)

// Opener implements ports.EditorOpener by running a terminal editor in the foreground
type Opener struct{}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open edits the file at path and waits for the editor to exit.
// Priority: cliEditor → $CUTDESK_EDITOR → $VISUAL → $EDITOR → platform defaults
func (o *Opener) Open(ctx context.Context, path string, cliEditor string) error {
	if path == "" {
		return fmt.Errorf("no path provided")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	editor, args := findEditor(path, cliEditor)
	if editor == "" {
		return fmt.Errorf("no suitable editor found. Set --editor flag, $CUTDESK_EDITOR, $VISUAL, or $EDITOR")
	}

	logging.Logger.Info("Opening editor", "editor", editor, "path", path)

	cmd := exec.CommandContext(ctx, editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor, err)
	}
	return nil
}

// findEditor resolves the editor command. Values like "code --wait" are split into command and flags.
func findEditor(path string, cliEditor string) (string, []string) {
	for _, candidate := range []string{
		cliEditor,
		os.Getenv("CUTDESK_EDITOR"),
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
	} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields[0], append(fields[1:], path)
		}
	}

	return findPlatformEditor(path)
}
