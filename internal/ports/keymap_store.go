package ports

import (
	"context"

	"cutdesk/internal/domain"
)

// KeymapReader reads a user's keymap document
type KeymapReader interface {
	// Get returns domain.ErrKeymapNotFound when the user has never saved a keymap
	Get(ctx context.Context, user string) (*domain.UserKeymap, error)
}

// KeymapWriter creates or updates a user's keymap document
type KeymapWriter interface {
	// Upsert applies update; nil fields keep the stored value
	Upsert(ctx context.Context, user string, update domain.KeymapUpdate) (*domain.UserKeymap, error)
}

// KeymapStore is the composite interface
type KeymapStore interface {
	KeymapReader
	KeymapWriter
	Close() error
}
