package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cutdesk/internal/domain"
	portsmocks "cutdesk/internal/ports/mocks"
	"cutdesk/internal/shortcuts"
)

func newTestKeymapService(t *testing.T) (*KeymapService, *portsmocks.MockKeymapStore) {
	t.Helper()

	registry := shortcuts.NewRegistry()
	shortcuts.RegisterCatalog(registry)
	store := portsmocks.NewMockKeymapStore(t)
	return NewKeymapService(store, registry, "ana"), store
}

func TestKeymapService_LoadAppliesStoredKeymap(t *testing.T) {
	service, store := newTestKeymapService(t)

	store.EXPECT().Get(mock.Anything, "ana").Return(&domain.UserKeymap{
		ActivePreset:   "avid",
		CustomBindings: map[string]string{"general.save": "Ctrl+w"},
	}, nil)

	require.NoError(t, service.Load(context.Background()))

	assert.Equal(t, "avid", service.Registry().ActivePreset())
	assert.Equal(t, "Ctrl+w", service.Registry().ResolvedBinding("general.save"))
	assert.Equal(t, "4", service.Registry().ResolvedBinding("navigation.nextFrame"))
}

func TestKeymapService_LoadFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "not found", err: domain.ErrKeymapNotFound},
		{name: "store failure", err: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestKeymapService(t)
			service.Registry().SetPreset("resolve")
			service.Registry().SetCustomBinding("general.save", "Ctrl+w")

			store.EXPECT().Get(mock.Anything, "ana").Return(nil, tt.err)

			err := service.Load(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, domain.DefaultPresetName, service.Registry().ActivePreset())
			assert.Empty(t, service.Registry().CustomOverrides())
		})
	}
}

func TestKeymapService_Save(t *testing.T) {
	service, store := newTestKeymapService(t)
	service.Registry().SetPreset("premiere")
	service.Registry().SetCustomBinding("general.undo", "u")

	store.EXPECT().Upsert(mock.Anything, "ana", mock.MatchedBy(func(u domain.KeymapUpdate) bool {
		return u.ActivePreset != nil && *u.ActivePreset == "premiere" && u.CustomBindings["general.undo"] == "u"
	})).Return(&domain.UserKeymap{}, nil)

	require.NoError(t, service.Save(context.Background()))
}

func TestKeymapService_SetPreset(t *testing.T) {
	service, store := newTestKeymapService(t)

	err := service.SetPreset(context.Background(), "vegas")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
	assert.Equal(t, domain.DefaultPresetName, service.Registry().ActivePreset())

	store.EXPECT().Upsert(mock.Anything, "ana", mock.MatchedBy(func(u domain.KeymapUpdate) bool {
		return u.ActivePreset != nil && *u.ActivePreset == "resolve" && u.CustomBindings == nil
	})).Return(&domain.UserKeymap{}, nil)

	require.NoError(t, service.SetPreset(context.Background(), "resolve"))
	assert.Equal(t, "resolve", service.Registry().ActivePreset())
}

func TestKeymapService_SetBinding(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		service, _ := newTestKeymapService(t)
		_, err := service.SetBinding(context.Background(), "nope", "x", false)
		assert.ErrorIs(t, err, domain.ErrUnknownAction)
	})

	t.Run("empty combo", func(t *testing.T) {
		service, _ := newTestKeymapService(t)
		_, err := service.SetBinding(context.Background(), "general.save", " ", false)
		assert.ErrorIs(t, err, domain.ErrEmptyCombo)
	})

	t.Run("conflict blocks", func(t *testing.T) {
		service, _ := newTestKeymapService(t)

		conflicts, err := service.SetBinding(context.Background(), "general.save", "ctrl+z", false)

		assert.ErrorIs(t, err, domain.ErrBindingConflict)
		require.Len(t, conflicts, 1)
		assert.Equal(t, "general.undo", conflicts[0].ID)
		assert.Equal(t, "Ctrl+s", service.Registry().ResolvedBinding("general.save"))
	})

	t.Run("force overrides conflict", func(t *testing.T) {
		service, store := newTestKeymapService(t)
		store.EXPECT().Upsert(mock.Anything, "ana", domain.KeymapUpdate{
			CustomBindings: map[string]string{"general.save": "Ctrl+z"},
		}).Return(&domain.UserKeymap{}, nil)

		conflicts, err := service.SetBinding(context.Background(), "general.save", "ctrl+z", true)

		require.NoError(t, err)
		assert.Len(t, conflicts, 1)
		assert.Equal(t, "Ctrl+z", service.Registry().ResolvedBinding("general.save"))
	})

	t.Run("other contexts do not conflict", func(t *testing.T) {
		service, store := newTestKeymapService(t)
		store.EXPECT().Upsert(mock.Anything, "ana", mock.Anything).Return(&domain.UserKeymap{}, nil)

		// review.approve is "a" in review-panel; generation.generate lives in generation-panel
		conflicts, err := service.SetBinding(context.Background(), "generation.generate", "a", false)

		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("rebinding to own key is not a conflict", func(t *testing.T) {
		service, store := newTestKeymapService(t)
		store.EXPECT().Upsert(mock.Anything, "ana", mock.Anything).Return(&domain.UserKeymap{}, nil)

		conflicts, err := service.SetBinding(context.Background(), "general.save", "Ctrl+s", false)

		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})
}

func TestKeymapService_UnsetBinding(t *testing.T) {
	service, store := newTestKeymapService(t)

	assert.ErrorIs(t, service.UnsetBinding(context.Background(), "general.save"), domain.ErrUnknownAction)

	service.Registry().SetCustomBinding("general.save", "Ctrl+w")
	service.Registry().SetCustomBinding("general.undo", "u")
	store.EXPECT().Upsert(mock.Anything, "ana", domain.KeymapUpdate{
		CustomBindings: map[string]string{"general.undo": "u"},
	}).Return(&domain.UserKeymap{}, nil)

	require.NoError(t, service.UnsetBinding(context.Background(), "general.save"))
	assert.Equal(t, "Ctrl+s", service.Registry().ResolvedBinding("general.save"))
}

func TestKeymapService_ResetBindings(t *testing.T) {
	service, store := newTestKeymapService(t)
	service.Registry().SetPreset("avid")
	service.Registry().SetCustomBinding("general.save", "Ctrl+w")

	store.EXPECT().Upsert(mock.Anything, "ana", domain.KeymapUpdate{CustomBindings: map[string]string{}}).
		Return(&domain.UserKeymap{}, nil)

	require.NoError(t, service.ResetBindings(context.Background()))
	assert.Empty(t, service.Registry().CustomOverrides())
	assert.Equal(t, "avid", service.Registry().ActivePreset())
}

func TestKeymapService_ExportImport(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			source, _ := newTestKeymapService(t)
			source.Registry().SetPreset("premiere")
			source.Registry().SetCustomBinding("playback.playPause", "Ctrl+p")

			data, err := source.Export(format)
			require.NoError(t, err)
			assert.Contains(t, string(data), "active_preset")
			assert.Contains(t, string(data), "playback.playPause")

			target, store := newTestKeymapService(t)
			store.EXPECT().Upsert(mock.Anything, "ana", mock.Anything).Return(&domain.UserKeymap{}, nil)

			imported, err := target.Import(context.Background(), data, format)
			require.NoError(t, err)

			assert.Equal(t, "premiere", imported.ActivePreset)
			assert.Equal(t, map[string]string{"playback.playPause": "Ctrl+p"}, imported.CustomBindings)
			assert.Equal(t, "Ctrl+p", target.Registry().ResolvedBinding("playback.playPause"))
		})
	}
}

func TestKeymapService_ImportRejectsUnknownEntries(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "unknown preset", doc: `{"active_preset":"vegas","custom_bindings":{}}`, wantErr: domain.ErrUnknownPreset},
		{name: "unknown action", doc: `{"custom_bindings":{"nope":"x"}}`, wantErr: domain.ErrUnknownAction},
		{name: "empty combo", doc: `{"custom_bindings":{"general.save":""}}`, wantErr: domain.ErrEmptyCombo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestKeymapService(t)
			service.Registry().SetCustomBinding("general.undo", "u")

			_, err := service.Import(context.Background(), []byte(tt.doc), FormatJSON)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, map[string]string{"general.undo": "u"}, service.Registry().CustomOverrides())
		})
	}
}

func TestKeymapService_ImportWithoutPresetKeepsActive(t *testing.T) {
	service, store := newTestKeymapService(t)
	service.Registry().SetPreset("avid")

	store.EXPECT().Upsert(mock.Anything, "ana", domain.KeymapUpdate{
		CustomBindings: map[string]string{"general.save": "Ctrl+w"},
	}).Return(&domain.UserKeymap{}, nil)

	_, err := service.Import(context.Background(), []byte("custom_bindings:\n  general.save: ctrl+w\n"), FormatYAML)

	require.NoError(t, err)
	assert.Equal(t, "avid", service.Registry().ActivePreset())
}

func TestKeymapService_UnsupportedFormat(t *testing.T) {
	service, _ := newTestKeymapService(t)

	_, err := service.Export("xml")
	assert.ErrorContains(t, err, "unsupported keymap format")

	_, err = service.Import(context.Background(), nil, "xml")
	assert.ErrorContains(t, err, "unsupported keymap format")
}

func TestKeymapService_StoreFailure(t *testing.T) {
	service, store := newTestKeymapService(t)
	store.EXPECT().Upsert(mock.Anything, "ana", mock.Anything).Return(nil, errors.New("disk full"))

	err := service.SetPreset(context.Background(), "avid")

	assert.ErrorContains(t, err, "failed to store keymap")
}
