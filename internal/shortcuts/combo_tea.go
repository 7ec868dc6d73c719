package shortcuts

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// terminalKeyNames maps Bubble Tea key names to the platform names used in combos.
var terminalKeyNames = map[string]string{
	"backspace": "Backspace",
	"delete":    "Delete",
	"down":      "ArrowDown",
	"end":       "End",
	"enter":     "Enter",
	"esc":       "Escape",
	"home":      "Home",
	"insert":    "Insert",
	"left":      "ArrowLeft",
	"pgdown":    "PageDown",
	"pgup":      "PageUp",
	"right":     "ArrowRight",
	"space":     " ",
	"tab":       "Tab",
	"up":        "ArrowUp",
}

// FromKeyMsg converts a terminal key message into a KeyEvent.
// Terminals cannot report Shift for most printable keys; an uppercase letter is taken as Shift held,
// matching what a browser reports for the same keystroke.
func FromKeyMsg(msg tea.KeyMsg) KeyEvent {
	var ev KeyEvent
	ev.Alt = msg.Alt

	if msg.Type == tea.KeyRunes {
		ev.Key = string(msg.Runes)
		if r, size := utf8.DecodeRuneInString(ev.Key); size == len(ev.Key) && unicode.IsUpper(r) {
			ev.Shift = true
		}
		return ev
	}

	name := strings.TrimPrefix(msg.String(), "alt+")
	if name == " " {
		ev.Key = " "
		return ev
	}

	tokens := strings.Split(name, "+")
	for _, mod := range tokens[:len(tokens)-1] {
		switch mod {
		case "ctrl":
			ev.Ctrl = true
		case "shift":
			ev.Shift = true
		}
	}
	ev.Key = terminalKeyName(tokens[len(tokens)-1])
	return ev
}

// ComboFromKeyMsg normalizes a terminal key message in one step.
func ComboFromKeyMsg(msg tea.KeyMsg) (string, bool) {
	if msg.Paste {
		return "", false
	}
	return Normalize(FromKeyMsg(msg))
}

func terminalKeyName(name string) string {
	if mapped, ok := terminalKeyNames[name]; ok {
		return mapped
	}
	if len(name) > 1 && name[0] == 'f' && isDigits(name[1:]) {
		return "F" + name[1:]
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
