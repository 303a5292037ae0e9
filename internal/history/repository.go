// Package history implements paginated retrieval of completed workouts via
// the append-ordered history index.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
	"github.com/meltforce/gymlog/internal/timer"
)

// ErrNotFound is returned by Update for an id with no record.
var ErrNotFound = errors.New("workout not found")

// Page size bounds for a single history fetch.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Batch is one page of completed workouts. HasMore is a heuristic on page
// fullness: a short page signals end of data, which is what callers use it
// for — it is not a remaining-record count.
type Batch struct {
	Workouts   []models.Workout `json:"workouts"`
	NextOffset int              `json:"nextOffset"`
	HasMore    bool             `json:"hasMore"`
}

// Repository reads and updates completed workout records.
type Repository struct {
	store *storage.Store
	clock timer.Clock
	log   *slog.Logger
}

// NewRepository creates a history repository over the given record store.
func NewRepository(store *storage.Store, clock timer.Clock, log *slog.Logger) *Repository {
	return &Repository{store: store, clock: clock, log: log}
}

// IDs returns a slice of the history index, most-recent-first. The limit is
// clamped to MaxPageSize.
func (r *Repository) IDs(ctx context.Context, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if limit <= 0 {
		return nil
	}

	ids := r.store.Index(ctx, storage.KeyWorkoutIDs)
	if offset >= len(ids) {
		return nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}

// Count returns the length of the history index.
func (r *Repository) Count(ctx context.Context) int {
	return len(r.store.Index(ctx, storage.KeyWorkoutIDs))
}

// ByID returns a single workout record.
func (r *Repository) ByID(ctx context.Context, id string) (models.Workout, bool) {
	var w models.Workout
	if !r.store.Get(ctx, storage.WorkoutKey(id), &w) {
		return models.Workout{}, false
	}
	return w, true
}

// FetchBatch resolves one page of the history index concurrently. Index
// entries that resolve to nothing, and records that are not completed, are
// dropped rather than surfaced as errors.
func (r *Repository) FetchBatch(ctx context.Context, offset, limit int) Batch {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	ids := r.IDs(ctx, offset, limit)

	resolved := make([]*models.Workout, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if w, ok := r.ByID(ctx, id); ok {
				resolved[i] = &w
			}
		}(i, id)
	}
	wg.Wait()

	workouts := make([]models.Workout, 0, len(ids))
	for i, w := range resolved {
		if w == nil {
			r.log.Warn("history index entry resolves to nothing", "id", ids[i])
			continue
		}
		if w.Status != models.StatusCompleted {
			r.log.Warn("history record is not completed", "id", ids[i], "status", w.Status)
			continue
		}
		workouts = append(workouts, *w)
	}

	return Batch{
		Workouts:   workouts,
		NextOffset: offset + limit,
		HasMore:    len(ids) == limit,
	}
}

// Update rewrites an existing workout record with a refreshed UpdatedAt. The
// record must already exist; indexes are not touched.
func (r *Repository) Update(ctx context.Context, id string, w models.Workout) (models.Workout, error) {
	if _, ok := r.ByID(ctx, id); !ok {
		return models.Workout{}, fmt.Errorf("updating workout %s: %w", id, ErrNotFound)
	}

	w.ID = id
	w.Exercises = models.ReindexExercises(w.Exercises)
	if err := w.Validate(); err != nil {
		return models.Workout{}, fmt.Errorf("validating workout: %w", err)
	}
	w.UpdatedAt = r.clock.Now()

	if err := r.store.Set(ctx, storage.WorkoutKey(id), w); err != nil {
		return models.Workout{}, fmt.Errorf("writing workout %s: %w", id, err)
	}
	return w, nil
}
