package shortcuts

import "strings"

// KeyEvent is a raw key press: the platform key name plus modifier flags.
type KeyEvent struct {
	Alt   bool
	Ctrl  bool
	Key   string
	Meta  bool
	Shift bool
}

// Modifier tokens, in the order they appear in a combo.
const (
	ModCtrl  = "Ctrl"
	ModShift = "Shift"
	ModAlt   = "Alt"
)

// SpaceKey is the canonical name of the space bar.
const SpaceKey = "Space"

var modifierKeys = map[string]bool{
	"Control": true,
	"Shift":   true,
	"Alt":     true,
	"Meta":    true,
}

// IsModifierKey reports whether the key name is itself a modifier.
func IsModifierKey(key string) bool {
	return modifierKeys[key]
}

// Normalize turns a key event into its canonical combo string, e.g. "Ctrl+Shift+z".
// A standalone modifier press (or an empty key) yields ok == false.
// Meta is folded into Ctrl so Cmd+z and Ctrl+z are the same combo.
func Normalize(ev KeyEvent) (string, bool) {
	if ev.Key == "" || IsModifierKey(ev.Key) {
		return "", false
	}

	parts := make([]string, 0, 4)
	if ev.Ctrl || ev.Meta {
		parts = append(parts, ModCtrl)
	}
	if ev.Shift {
		parts = append(parts, ModShift)
	}
	if ev.Alt {
		parts = append(parts, ModAlt)
	}
	parts = append(parts, canonicalKeyName(ev.Key))

	return strings.Join(parts, "+"), true
}

func canonicalKeyName(key string) string {
	if key == " " {
		return SpaceKey
	}
	return key
}
