package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cutdesk/internal/config"
	"cutdesk/internal/jogdial"
)

// StepMsg carries one jog dial emission to the model
type StepMsg struct {
	Direction jogdial.Direction
	Frames    int
}

// SettingsMsg carries reloaded settings from the watcher
type SettingsMsg struct {
	Settings *config.Settings
}

// playbackTickMsg advances the transport
type playbackTickMsg struct{}

// generationTickMsg advances the generation job
type generationTickMsg struct{ attempt int }

// clearErrorMsg hides the error line if it still shows the same error
type clearErrorMsg struct{ seq int }

// keymapSavedMsg reports the result of a background keymap write
type keymapSavedMsg struct {
	err  error
	what string
}

const (
	errorClearDelay    = 5 * time.Second
	generationInterval = 150 * time.Millisecond
	playbackInterval   = time.Second / 24
)

func playbackTick() tea.Cmd {
	return tea.Tick(playbackInterval, func(time.Time) tea.Msg { return playbackTickMsg{} })
}

func generationTick(attempt int) tea.Cmd {
	return tea.Tick(generationInterval, func(time.Time) tea.Msg { return generationTickMsg{attempt: attempt} })
}

func clearErrorAfter(seq int) tea.Cmd {
	return tea.Tick(errorClearDelay, func(time.Time) tea.Msg { return clearErrorMsg{seq: seq} })
}

// stepQueue carries dial emissions from the engine goroutine to the model.
// Pushes never block; steps not yet read are summed into one signed frame count.
type stepQueue struct {
	mu        sync.Mutex
	net       int
	ready     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newStepQueue() *stepQueue {
	return &stepQueue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func (q *stepQueue) push(dir jogdial.Direction, frames int) {
	q.mu.Lock()
	if dir == jogdial.Backward {
		q.net -= frames
	} else {
		q.net += frames
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// take returns the pending steps as one message; false when they cancel out or none are pending
func (q *stepQueue) take() (StepMsg, bool) {
	q.mu.Lock()
	net := q.net
	q.net = 0
	q.mu.Unlock()

	switch {
	case net > 0:
		return StepMsg{Direction: jogdial.Forward, Frames: net}, true
	case net < 0:
		return StepMsg{Direction: jogdial.Backward, Frames: -net}, true
	}
	return StepMsg{}, false
}

// close releases every waiter; later waits return immediately
func (q *stepQueue) close() {
	q.closeOnce.Do(func() { close(q.done) })
}

// wait delivers the next dial emission, or nil once the queue is closed or ctx ends
func (q *stepQueue) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-q.ready:
				if msg, ok := q.take(); ok {
					return msg
				}
			case <-q.done:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// waitForSettings delivers the next settings reload; nil once the watcher stops
func waitForSettings(updates <-chan *config.Settings) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		settings, ok := <-updates
		if !ok {
			return nil
		}
		return SettingsMsg{Settings: settings}
	}
}
