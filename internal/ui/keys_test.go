package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutdesk/internal/shortcuts"
)

func TestDisplayCombo(t *testing.T) {
	tests := []struct {
		combo    string
		expected string
	}{
		{"", "unbound"},
		{"a", "a"},
		{"ArrowLeft", "←"},
		{"Space", "space"},
		{"Ctrl+ArrowLeft", "ctrl+←"},
		{"Shift+G", "shift+G"},
		{"Ctrl++", "ctrl++"},
		{"Ctrl+Shift+z", "ctrl+shift+z"},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			assert.Equal(t, tt.expected, displayCombo(tt.combo))
		})
	}
}

func TestNewKeyMap(t *testing.T) {
	registry := shortcuts.NewRegistry()
	shortcuts.RegisterCatalog(registry)

	t.Run("groups visible bindings by category", func(t *testing.T) {
		km := NewKeyMap(registry, shortcuts.ContextReview)

		assert.Equal(t, []string{"General", "Navigation", "Playback", "Review"}, km.Titles())
		require.Len(t, km.FullHelp(), 4)
		assert.Len(t, km.FullHelp()[3], 5)
		assert.Len(t, km.ShortHelp(), len(shortHelpActions))
	})

	t.Run("shows resolved combos", func(t *testing.T) {
		registry.SetPreset(shortcuts.PresetAvid)
		defer registry.SetPreset(shortcuts.PresetDefault)

		km := NewKeyMap(registry, shortcuts.ContextTimeline)
		for _, b := range km.ShortHelp() {
			if b.Help().Desc == "Next frame" {
				assert.Equal(t, "4", b.Help().Key)
				return
			}
		}
		t.Fatal("next frame missing from short help")
	})

	t.Run("disables unbound actions", func(t *testing.T) {
		registry.SetCustomBinding("general.help", "")
		defer registry.RemoveCustomBinding("general.help")

		km := NewKeyMap(registry, shortcuts.ContextTimeline)
		for _, b := range km.ShortHelp() {
			if b.Help().Desc == "Show keyboard shortcuts" {
				assert.False(t, b.Enabled())
				assert.Equal(t, "unbound", b.Help().Key)
				return
			}
		}
		t.Fatal("help missing from short help")
	})
}
