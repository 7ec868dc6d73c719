package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_DeliversReloadedSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, SaveSettingsTo(path, &Settings{DefaultPreset: "avid"}))

	select {
	case settings := <-updates:
		require.NotNil(t, settings)
		assert.Equal(t, "avid", settings.DefaultPreset)
	case <-time.After(5 * time.Second):
		t.Fatal("no settings update delivered")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-updates:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.db"), []byte("x"), 0644))

	select {
	case settings := <-updates:
		t.Fatalf("unexpected update %+v", settings)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "settings.json"))
	assert.Error(t, err)
}
