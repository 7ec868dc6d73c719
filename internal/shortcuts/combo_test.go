package shortcuts

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Combos(t *testing.T) {
	tests := []struct {
		name     string
		event    KeyEvent
		expected string
	}{
		{"space alone", KeyEvent{Key: " "}, "Space"},
		{"ctrl z", KeyEvent{Key: "z", Ctrl: true}, "Ctrl+z"},
		{"ctrl shift z", KeyEvent{Key: "z", Ctrl: true, Shift: true}, "Ctrl+Shift+z"},
		{"meta aliases ctrl", KeyEvent{Key: "z", Meta: true}, "Ctrl+z"},
		{"meta and ctrl collapse", KeyEvent{Key: "z", Meta: true, Ctrl: true}, "Ctrl+z"},
		{"shift arrow", KeyEvent{Key: "ArrowRight", Shift: true}, "Shift+ArrowRight"},
		{"fixed modifier order", KeyEvent{Key: "x", Alt: true, Shift: true, Ctrl: true}, "Ctrl+Shift+Alt+x"},
		{"alt only", KeyEvent{Key: "Delete", Alt: true}, "Alt+Delete"},
		{"escape passes through", KeyEvent{Key: "Escape"}, "Escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, ok := Normalize(tt.event)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, combo)
		})
	}
}

func TestNormalize_StandaloneModifiers(t *testing.T) {
	for _, key := range []string{"Control", "Shift", "Alt", "Meta"} {
		t.Run(key, func(t *testing.T) {
			combo, ok := Normalize(KeyEvent{Key: key, Ctrl: true, Shift: true, Alt: true, Meta: true})
			assert.False(t, ok)
			assert.Empty(t, combo)
		})
	}
}

func TestNormalize_EmptyKey(t *testing.T) {
	combo, ok := Normalize(KeyEvent{Ctrl: true})
	assert.False(t, ok)
	assert.Empty(t, combo)
}

func TestNormalize_Deterministic(t *testing.T) {
	ev := KeyEvent{Key: "k", Ctrl: true, Alt: true}
	first, _ := Normalize(ev)
	for i := 0; i < 10; i++ {
		again, ok := Normalize(ev)
		assert.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestComboFromKeyMsg(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected string
	}{
		{"lowercase rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, "z"},
		{"uppercase rune implies shift", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, "Shift+G"},
		{"punctuation", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, "?"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, "Alt+x"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, "Space"},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlZ}, "Ctrl+z"},
		{"shift arrow", tea.KeyMsg{Type: tea.KeyShiftRight}, "Shift+ArrowRight"},
		{"ctrl shift arrow", tea.KeyMsg{Type: tea.KeyCtrlShiftLeft}, "Ctrl+Shift+ArrowLeft"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "Enter"},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "Shift+Tab"},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, "PageDown"},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, "F5"},
		{"alt arrow", tea.KeyMsg{Type: tea.KeyUp, Alt: true}, "Alt+ArrowUp"},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, "Home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, ok := ComboFromKeyMsg(tt.msg)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, combo)
		})
	}
}

func TestComboFromKeyMsg_PasteIsIgnored(t *testing.T) {
	combo, ok := ComboFromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Paste: true})
	assert.False(t, ok)
	assert.Empty(t, combo)
}
