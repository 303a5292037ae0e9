// Package plans implements CRUD over workout-plan templates, indexed by
// day of week.
package plans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
	"github.com/meltforce/gymlog/internal/timer"
)

// ErrInvalidDay is returned for a day-of-week outside 0..6.
var ErrInvalidDay = errors.New("day of week must be 0..6")

// Repository persists workout plans and keeps the per-weekday id indexes in
// step with the plan records.
type Repository struct {
	store *storage.Store
	clock timer.Clock
	log   *slog.Logger
}

// NewRepository creates a plan repository over the given record store.
func NewRepository(store *storage.Store, clock timer.Clock, log *slog.Logger) *Repository {
	return &Repository{store: store, clock: clock, log: log}
}

// Save upserts a plan by id and maintains the day indexes. When an existing
// plan moves to a different weekday, its id is migrated out of the old day's
// index; without that, stale entries would accumulate and the plan would
// surface under both days.
func (r *Repository) Save(ctx context.Context, plan models.WorkoutPlan) error {
	plan.PlannedExercises = models.ReindexPlannedExercises(plan.PlannedExercises)
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("validating plan: %w", err)
	}
	plan.UpdatedAt = r.clock.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = plan.UpdatedAt
	}

	var previous models.WorkoutPlan
	hadPrevious := r.store.Get(ctx, storage.PlanKey(plan.ID), &previous)

	if err := r.store.Set(ctx, storage.PlanKey(plan.ID), plan); err != nil {
		return fmt.Errorf("writing plan %s: %w", plan.ID, err)
	}

	if hadPrevious && previous.DayOfWeek != plan.DayOfWeek {
		if err := r.removeFromDayIndex(ctx, previous.DayOfWeek, plan.ID); err != nil {
			return err
		}
	}

	dayKey := storage.PlansByDayKey(plan.DayOfWeek)
	ids := r.store.Index(ctx, dayKey)
	for _, id := range ids {
		if id == plan.ID {
			return nil
		}
	}
	ids = append(ids, plan.ID)
	if err := r.store.SetIndex(ctx, dayKey, ids); err != nil {
		return fmt.Errorf("updating day index %d: %w", plan.DayOfWeek, err)
	}
	return nil
}

// ByDay returns the plans filed under a weekday, in creation order. Index
// entries that no longer resolve to a record are filtered out.
func (r *Repository) ByDay(ctx context.Context, day int) ([]models.WorkoutPlan, error) {
	if day < 0 || day > 6 {
		return nil, ErrInvalidDay
	}

	ids := r.store.Index(ctx, storage.PlansByDayKey(day))
	plans := make([]models.WorkoutPlan, 0, len(ids))
	for _, id := range ids {
		var plan models.WorkoutPlan
		if !r.store.Get(ctx, storage.PlanKey(id), &plan) {
			r.log.Warn("day index entry resolves to nothing", "day", day, "plan", id)
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// ByID returns a single plan by id.
func (r *Repository) ByID(ctx context.Context, id string) (models.WorkoutPlan, bool) {
	var plan models.WorkoutPlan
	if !r.store.Get(ctx, storage.PlanKey(id), &plan) {
		return models.WorkoutPlan{}, false
	}
	return plan, true
}

// Delete removes a plan record and its day-index entry. Deleting a plan that
// does not exist is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	plan, ok := r.ByID(ctx, id)
	if !ok {
		return nil
	}

	if err := r.removeFromDayIndex(ctx, plan.DayOfWeek, id); err != nil {
		return err
	}
	if err := r.store.Remove(ctx, storage.PlanKey(id)); err != nil {
		return fmt.Errorf("deleting plan %s: %w", id, err)
	}
	return nil
}

func (r *Repository) removeFromDayIndex(ctx context.Context, day int, id string) error {
	dayKey := storage.PlansByDayKey(day)
	ids := r.store.Index(ctx, dayKey)
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	if err := r.store.SetIndex(ctx, dayKey, kept); err != nil {
		return fmt.Errorf("updating day index %d: %w", day, err)
	}
	return nil
}
