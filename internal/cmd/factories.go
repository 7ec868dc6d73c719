package cmd

import (
	"fmt"

	adaptereditor "cutdesk/internal/adapters/editor"
	adapterremote "cutdesk/internal/adapters/remote"
	adapterstorage "cutdesk/internal/adapters/storage"
	"cutdesk/internal/config"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
	"cutdesk/internal/services"
	"cutdesk/internal/shortcuts"
)

// Container holds all dependencies for the application
type Container struct {
	Editor        ports.EditorOpener
	KeymapService *services.KeymapService
	Settings      *config.Settings

	// Internal - for cleanup only
	store ports.KeymapStore
}

// NewContainer creates a new Container with all dependencies wired.
// The registry holds every catalog action with no behaviour so commands can resolve keys without the TUI;
// the TUI replaces them with live actions.
func NewContainer(settings *config.Settings, user string) (*Container, error) {
	registry := NewRegistry(settings)
	if err := settings.Validate(registry.Presets()); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	store, err := NewStore(settings)
	if err != nil {
		return nil, err
	}

	return &Container{
		Editor:        adaptereditor.NewOpener(),
		KeymapService: services.NewKeymapService(store, registry, user),
		Settings:      settings,
		store:         store,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// NewRegistry creates a registry holding the catalog, honouring default_preset
func NewRegistry(settings *config.Settings) *shortcuts.Registry {
	var opts []shortcuts.Option
	if settings.DefaultPreset != "" {
		opts = append(opts, shortcuts.WithDefaultPreset(settings.DefaultPreset))
	}
	registry := shortcuts.NewRegistry(opts...)
	shortcuts.RegisterCatalog(registry)
	return registry
}

// NewStore opens the keymap store selected by keymap_store
func NewStore(settings *config.Settings) (ports.KeymapStore, error) {
	switch settings.StoreKind() {
	case config.KeymapStoreRemote:
		logging.Logger.Debug("Using remote keymap store", "url", settings.RemoteURL)
		return adapterremote.NewKeymapClient(settings.RemoteURL, settings.RemoteToken), nil
	default:
		repo, err := adapterstorage.NewKeymapRepository(config.GetDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open keymap database: %w", err)
		}
		return repo, nil
	}
}
