package shortcuts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPresets_Names(t *testing.T) {
	assert.Equal(t, []string{"avid", "default", "premiere", "resolve"}, DefaultPresets().Names())
}

func TestDefaultPresets_DefaultMirrorsCatalog(t *testing.T) {
	preset, ok := DefaultPresets().Get(PresetDefault)
	require.True(t, ok)

	for _, spec := range Catalog() {
		key, found := preset.Lookup(spec.ID)
		require.True(t, found, spec.ID)
		assert.Equal(t, spec.Key, key, spec.ID)
	}
}

func TestDefaultPresets_OnlyKnownActions(t *testing.T) {
	for name, preset := range DefaultPresets() {
		for id := range preset.Bindings {
			assert.True(t, IsKnownAction(id), "preset %s maps unknown action %s", name, id)
		}
	}
}

func TestPresetTable_GetReturnsCopy(t *testing.T) {
	table := DefaultPresets()
	preset, ok := table.Get(PresetAvid)
	require.True(t, ok)

	preset.Bindings["navigation.nextFrame"] = "changed"

	again, _ := table.Get(PresetAvid)
	assert.Equal(t, "4", again.Bindings["navigation.nextFrame"])
}

func TestRegistry_CatalogUnderPresets(t *testing.T) {
	r := NewRegistry()
	RegisterCatalog(r)

	assert.Equal(t, "ArrowRight", r.ResolvedBinding("navigation.nextFrame"))

	r.SetPreset(PresetAvid)
	assert.Equal(t, "4", r.ResolvedBinding("navigation.nextFrame"))
	assert.Equal(t, "a", r.ResolvedBinding("review.approve"), "avid does not map review actions")

	b, found := r.ShortcutForKey("r", ContextReview)
	require.True(t, found)
	assert.Equal(t, "review.reject", b.ID, "review scope beats the global avid mark out")

	b, found = r.ShortcutForKey("r", "")
	require.True(t, found)
	assert.Equal(t, "playback.markOut", b.ID)
}

func TestCatalog_Sorted(t *testing.T) {
	specs := Catalog()
	require.NotEmpty(t, specs)
	for i := 1; i < len(specs); i++ {
		prev, cur := specs[i-1], specs[i]
		if prev.Category == cur.Category {
			assert.Less(t, prev.ID, cur.ID)
		} else {
			assert.Less(t, prev.Category.Rank(), cur.Category.Rank())
		}
	}
}
