package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
)

func newTestRepo(t *testing.T) (*Repository, *storage.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.Open(t.TempDir(), log)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRepository(store, log), store
}

func TestGetDefaultsWhenAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)

	got := repo.Get(context.Background())
	want := models.DefaultSettings()
	if got != want {
		t.Errorf("Get() = %+v, want defaults %+v", got, want)
	}
	if got.Theme != models.ThemeDark || !got.Notifications {
		t.Errorf("defaults = %+v, want dark theme with notifications on", got)
	}
}

func TestSaveAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	in := models.UserSettings{Theme: models.ThemeLight, Notifications: false}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got := repo.Get(ctx); got != in {
		t.Errorf("Get() = %+v, want %+v", got, in)
	}
}

func TestSaveRejectsInvalidTheme(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Save(context.Background(), models.UserSettings{Theme: "sepia"})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Save() error = %v, want validation error", err)
	}
}

func TestGetDegradesOnCorruptRecord(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	// A stored theme outside the enum falls back to defaults on read.
	if err := store.Set(ctx, storage.KeySettings, map[string]any{
		"theme":         "sepia",
		"notifications": false,
	}); err != nil {
		t.Fatalf("seeding record: %v", err)
	}

	if got := repo.Get(ctx); got != models.DefaultSettings() {
		t.Errorf("Get() = %+v, want defaults", got)
	}
}
