package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"cutdesk/internal/jogdial"
)

func newTestWidget() *JogWidget {
	scheduler := jogdial.NewManualScheduler(time.Unix(1700000000, 0))
	w := NewJogWidget(jogdial.NewEngine(jogdial.WithClock(scheduler.Now), jogdial.WithScheduler(scheduler)))
	w.SetOrigin(10, 5)
	return w
}

func TestJogWidget_HandleMouse(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.MouseMsg
		handled  bool
		dragging bool
	}{
		{
			name:     "left press on the dial starts a drag",
			msg:      tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			handled:  true,
			dragging: true,
		},
		{
			name: "press outside the dial is ignored",
			msg:  tea.MouseMsg{X: 40, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		},
		{
			name: "right button is ignored",
			msg:  tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
		},
		{
			name: "motion without a drag is ignored",
			msg:  tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		},
		{
			name: "release without a drag is ignored",
			msg:  tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionRelease},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWidget()
			assert.Equal(t, tt.handled, w.HandleMouse(tt.msg))
			assert.Equal(t, tt.dragging, w.Dragging())
			assert.Equal(t, tt.dragging, w.engine.GetState().IsDragging)
		})
	}
}

func TestJogWidget_DragKeepsTrackingOutside(t *testing.T) {
	w := newTestWidget()

	w.HandleMouse(tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, w.HandleMouse(tea.MouseMsg{X: 80, Y: 30, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}))
	assert.True(t, w.HandleMouse(tea.MouseMsg{X: 80, Y: 30, Action: tea.MouseActionRelease}))

	assert.False(t, w.Dragging())
	assert.False(t, w.engine.GetState().IsDragging)
}

func TestJogWidget_View(t *testing.T) {
	w := newTestWidget()

	view := w.View()

	assert.Contains(t, view, "+")
	assert.Contains(t, view, "●")
	assert.Contains(t, view, "·")
}
