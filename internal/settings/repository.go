// Package settings persists the user-preferences singleton.
package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
)

// Repository reads and writes the UserSettings record.
type Repository struct {
	store *storage.Store
	log   *slog.Logger
}

// NewRepository creates a settings repository over the given record store.
func NewRepository(store *storage.Store, log *slog.Logger) *Repository {
	return &Repository{store: store, log: log}
}

// Get returns the stored settings, or the defaults when none exist yet. An
// unreadable record also degrades to the defaults.
func (r *Repository) Get(ctx context.Context) models.UserSettings {
	var s models.UserSettings
	if !r.store.Get(ctx, storage.KeySettings, &s) {
		return models.DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		r.log.Warn("stored settings invalid, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return s
}

// Save validates and writes the settings record.
func (r *Repository) Save(ctx context.Context, s models.UserSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validating settings: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeySettings, s); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
