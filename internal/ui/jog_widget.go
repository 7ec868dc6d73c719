package ui

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cutdesk/internal/jogdial"
	"cutdesk/internal/theme"
)

const (
	dialCols   = 21
	dialRows   = 11
	dialRadius = 9.0 // in columns
)

// cellAspect converts terminal rows into column units; cells are roughly twice as tall as wide.
const cellAspect = 2.0

// JogWidget draws a jog dial and feeds mouse drags on it to the physics engine.
type JogWidget struct {
	dragging bool
	engine   *jogdial.Engine
	originX  int // screen column of the dial's top-left cell
	originY  int // screen row of the dial's top-left cell
}

// NewJogWidget wraps engine
func NewJogWidget(engine *jogdial.Engine) *JogWidget {
	return &JogWidget{engine: engine}
}

// SetOrigin places the dial on screen
func (w *JogWidget) SetOrigin(x, y int) {
	w.originX = x
	w.originY = y
}

// Dragging reports whether a mouse drag is in progress
func (w *JogWidget) Dragging() bool {
	return w.dragging
}

func (w *JogWidget) contains(x, y int) bool {
	return x >= w.originX && x < w.originX+dialCols && y >= w.originY && y < w.originY+dialRows
}

func (w *JogWidget) center() (float64, float64) {
	return float64(w.originX) + dialCols/2, (float64(w.originY) + dialRows/2) * cellAspect
}

// HandleMouse routes a mouse event to the engine and reports whether the widget used it.
// A drag that started on the dial keeps tracking after the pointer leaves it.
func (w *JogWidget) HandleMouse(msg tea.MouseMsg) bool {
	px, py := float64(msg.X), float64(msg.Y)*cellAspect

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !w.contains(msg.X, msg.Y) {
			return false
		}
		cx, cy := w.center()
		w.engine.StartDrag(px, py, cx, cy)
		w.dragging = true
		return true
	case tea.MouseActionMotion:
		if !w.dragging {
			return false
		}
		w.engine.Drag(px, py)
		return true
	case tea.MouseActionRelease:
		if !w.dragging {
			return false
		}
		w.engine.EndDrag()
		w.dragging = false
		return true
	}
	return false
}

// View draws the dial with its marker at the current angle
func (w *JogWidget) View() string {
	state := w.engine.GetState()

	grid := make([][]rune, dialRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", dialCols))
	}

	plot := func(deg float64, r rune) {
		rad := deg * math.Pi / 180
		col := int(math.Round(dialCols/2 + dialRadius*math.Cos(rad)))
		row := int(math.Round(dialRows/2 + dialRadius*math.Sin(rad)/cellAspect))
		if row >= 0 && row < dialRows && col >= 0 && col < dialCols {
			grid[row][col] = r
		}
	}
	for deg := 0.0; deg < 360; deg += 15 {
		plot(deg, '·')
	}
	plot(state.Angle, '●')
	grid[dialRows/2][dialCols/2] = '+'

	lines := make([]string, dialRows)
	for i, row := range grid {
		lines[i] = theme.DialStyle.Render(string(row))
	}
	return strings.Join(lines, "\n")
}
