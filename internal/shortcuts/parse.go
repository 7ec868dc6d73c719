package shortcuts

import (
	"fmt"
	"strings"

	"cutdesk/internal/domain"
)

var modifierAliases = map[string]string{
	"alt":     ModAlt,
	"cmd":     ModCtrl,
	"command": ModCtrl,
	"control": ModCtrl,
	"ctrl":    ModCtrl,
	"meta":    ModCtrl,
	"opt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
}

// ParseCombo canonicalizes a combo typed by a person, e.g. "ctrl+shift+left" becomes "Ctrl+Shift+ArrowLeft".
// Modifier names are case-insensitive and may appear in any order. Letter keys keep their case.
func ParseCombo(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.ErrEmptyCombo
	}

	var tokens []string
	switch {
	case s == "+":
		tokens = []string{"+"}
	case strings.HasSuffix(s, "++"):
		tokens = append(strings.Split(strings.TrimSuffix(s, "++"), "+"), "+")
	default:
		tokens = strings.Split(s, "+")
	}

	var ev KeyEvent
	for _, tok := range tokens[:len(tokens)-1] {
		switch modifierAliases[strings.ToLower(strings.TrimSpace(tok))] {
		case ModCtrl:
			ev.Ctrl = true
		case ModShift:
			ev.Shift = true
		case ModAlt:
			ev.Alt = true
		default:
			return "", fmt.Errorf("unknown modifier %q in combo %q", tok, s)
		}
	}

	key := strings.TrimSpace(tokens[len(tokens)-1])
	if _, isModifier := modifierAliases[strings.ToLower(key)]; isModifier {
		key = ""
	}
	if len(key) > 1 {
		key = canonicalKey(key)
	}

	ev.Key = key
	combo, ok := Normalize(ev)
	if !ok {
		return "", fmt.Errorf("combo %q has no key besides modifiers: %w", s, domain.ErrEmptyCombo)
	}
	return combo, nil
}

// canonicalKey maps a multi-character key name in any case to its platform name.
func canonicalKey(key string) string {
	lower := strings.ToLower(key)
	if lower == "space" {
		return SpaceKey
	}
	if mapped := terminalKeyName(lower); mapped != lower {
		return mapped
	}
	for _, name := range terminalKeyNames {
		if strings.EqualFold(name, key) {
			return name
		}
	}
	return key
}
