package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutdesk/internal/config"
	"cutdesk/internal/domain"
	"cutdesk/internal/shortcuts"
)

func TestBuildPresetRows(t *testing.T) {
	registry := NewRegistry(&config.Settings{DefaultPreset: shortcuts.PresetAvid})

	rows := buildPresetRows(registry)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
		assert.Equal(t, r.Name == shortcuts.PresetAvid, r.Active, r.Name)
		assert.NotZero(t, r.Bindings, r.Name)
		assert.NotEmpty(t, r.Description, r.Name)
	}
	assert.Equal(t, []string{"avid", "default", "premiere", "resolve"}, names)
}

func TestPresetKeyRows(t *testing.T) {
	registry := NewRegistry(&config.Settings{})

	t.Run("known preset", func(t *testing.T) {
		rows, err := presetKeyRows(registry, shortcuts.PresetAvid)
		require.NoError(t, err)
		require.Len(t, rows, len(shortcuts.Catalog()))

		keys := make(map[string]string)
		for _, r := range rows {
			keys[r[0]] = r[1]
		}
		assert.Equal(t, "4", keys["navigation.nextFrame"])
		assert.Equal(t, "(?)", keys["general.help"], "catalog default shown for untouched actions")
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := presetKeyRows(registry, "finalcut")
		assert.True(t, errors.Is(err, domain.ErrUnknownPreset))
	})
}
