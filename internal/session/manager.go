// Package session owns the single active workout: the state machine that
// starts, pauses, resumes, stops or discards a session, and the transition
// that moves a finished record into permanent history.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
	"github.com/meltforce/gymlog/internal/timer"
)

var (
	// ErrNoActiveSession is returned by transitions that require an
	// occupied active slot.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionInProgress is returned by Start when the active slot is
	// already occupied.
	ErrSessionInProgress = errors.New("a session is already active")
	// ErrNotPaused is returned by Resume on a running session.
	ErrNotPaused = errors.New("session is not paused")
	// ErrNotActiveEligible is returned when a workout whose status is not
	// in-progress or incomplete is written to the active slot.
	ErrNotActiveEligible = errors.New("workout status not eligible for the active slot")
)

// Notifier schedules the workout-duration alert side effect. Calls are
// fire-and-forget; implementations log their own failures.
type Notifier interface {
	ScheduleDurationAlert(w models.Workout)
	CancelAlerts()
}

// NopNotifier is a Notifier that does nothing, for when alerts are disabled.
type NopNotifier struct{}

func (NopNotifier) ScheduleDurationAlert(models.Workout) {}
func (NopNotifier) CancelAlerts()                        {}

// Manager drives the active-session state machine. All transitions take the
// manager mutex and re-read the active slot before acting, so a duplicate
// invocation (a stray double-tap reaching the API twice) observes the
// post-transition state and fails cleanly instead of racing.
type Manager struct {
	store    *storage.Store
	clock    timer.Clock
	notifier Notifier
	log      *slog.Logger

	mu sync.Mutex
}

// NewManager creates a session manager over the given record store.
func NewManager(store *storage.Store, clock timer.Clock, notifier Notifier, log *slog.Logger) *Manager {
	return &Manager{store: store, clock: clock, notifier: notifier, log: log}
}

// Active returns the workout in the active slot, if any.
func (m *Manager) Active(ctx context.Context) (models.Workout, bool) {
	var w models.Workout
	if !m.store.Get(ctx, storage.KeyActiveWorkout, &w) {
		return models.Workout{}, false
	}
	return w, true
}

// Start creates a fresh in-progress workout in the active slot. The id is
// temporary; a permanent id is allocated when the session completes.
func (m *Manager) Start(ctx context.Context) (models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.start(ctx, nil)
}

// StartFromPlan starts a session seeded from a plan's templates: each
// planned exercise is materialized into an exercise with TargetSets sets of
// TargetReps reps, fresh ids and sequential order.
func (m *Manager) StartFromPlan(ctx context.Context, planned []models.PlannedExercise) (models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range planned {
		if err := p.Validate(); err != nil {
			return models.Workout{}, fmt.Errorf("validating plan template: %w", err)
		}
	}
	return m.start(ctx, planned)
}

func (m *Manager) start(ctx context.Context, planned []models.PlannedExercise) (models.Workout, error) {
	if _, ok := m.Active(ctx); ok {
		return models.Workout{}, ErrSessionInProgress
	}

	now := m.clock.Now()
	w := models.Workout{
		ID:        "temp-" + uuid.NewString(),
		StartTime: now,
		Status:    models.StatusInProgress,
		Exercises: []models.Exercise{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, p := range planned {
		e := models.Exercise{
			ID:           uuid.NewString(),
			MuscleGroups: append([]models.MuscleGroup(nil), p.MuscleGroups...),
			Machine:      p.Machine,
			Order:        i,
			CreatedAt:    now,
			Notes:        p.Notes,
		}
		for s := 0; s < p.TargetSets; s++ {
			e.Sets = append(e.Sets, models.SetEntry{
				ID:    uuid.NewString(),
				Reps:  p.TargetReps,
				Order: s,
			})
		}
		w.Exercises = append(w.Exercises, e)
	}

	if err := m.saveActive(ctx, w); err != nil {
		return models.Workout{}, err
	}
	m.notifier.ScheduleDurationAlert(w)
	m.log.Info("session started", "id", w.ID, "exercises", len(w.Exercises))
	return w, nil
}

// Pause freezes the session clock. The running interval is folded into
// AccumulatedTime; repeating the call does not advance time further.
func (m *Manager) Pause(ctx context.Context) (models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.Active(ctx)
	if !ok {
		return models.Workout{}, ErrNoActiveSession
	}

	now := m.clock.Now()
	w.AccumulatedTime = timer.FreezeAccumulated(w, now)
	paused := now
	w.PausedAt = &paused
	w.UpdatedAt = now

	if err := m.saveActive(ctx, w); err != nil {
		return models.Workout{}, err
	}
	m.notifier.CancelAlerts()
	return w, nil
}

// Resume restarts the session clock after a pause. StartTime is reset to now
// so subsequent duration queries add freshly elapsed time on top of the
// preserved AccumulatedTime.
func (m *Manager) Resume(ctx context.Context) (models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.Active(ctx)
	if !ok {
		return models.Workout{}, ErrNoActiveSession
	}
	if !w.Paused() {
		return models.Workout{}, ErrNotPaused
	}

	now := m.clock.Now()
	w.StartTime = now
	w.PausedAt = nil
	w.UpdatedAt = now

	if err := m.saveActive(ctx, w); err != nil {
		return models.Workout{}, err
	}
	m.notifier.ScheduleDurationAlert(w)
	return w, nil
}

// Stop completes the session: the final duration is frozen, the record is
// re-keyed under a permanent id, prepended to the history index and removed
// from the active slot. This is the only transition that migrates a record
// from the active namespace into history.
func (m *Manager) Stop(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.Active(ctx)
	if !ok {
		return "", ErrNoActiveSession
	}

	now := m.clock.Now()
	w.AccumulatedTime = timer.FreezeAccumulated(w, now)
	w.PausedAt = nil
	w.ID = uuid.NewString()
	w.Status = models.StatusCompleted
	end := now
	w.EndTime = &end
	w.UpdatedAt = now

	if err := w.Validate(); err != nil {
		return "", fmt.Errorf("validating completed workout: %w", err)
	}
	if err := m.store.Set(ctx, storage.WorkoutKey(w.ID), w); err != nil {
		return "", fmt.Errorf("archiving workout: %w", err)
	}

	ids := m.store.Index(ctx, storage.KeyWorkoutIDs)
	ids = append([]string{w.ID}, ids...)
	if err := m.store.SetIndex(ctx, storage.KeyWorkoutIDs, ids); err != nil {
		return "", fmt.Errorf("updating history index: %w", err)
	}

	if err := m.store.Remove(ctx, storage.KeyActiveWorkout); err != nil {
		return "", fmt.Errorf("clearing active slot: %w", err)
	}

	m.notifier.CancelAlerts()
	m.log.Info("session completed", "id", w.ID, "duration", timer.FormatTimer(w.AccumulatedTime))
	return w.ID, nil
}

// Discard deletes the active slot without archiving anything.
func (m *Manager) Discard(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, storage.KeyActiveWorkout); err != nil {
		return fmt.Errorf("discarding session: %w", err)
	}
	m.notifier.CancelAlerts()
	return nil
}

// UpdateExercises replaces the active workout's exercise list, re-indexing
// order to match position. Timer fields are untouched.
func (m *Manager) UpdateExercises(ctx context.Context, exercises []models.Exercise) (models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.Active(ctx)
	if !ok {
		return models.Workout{}, ErrNoActiveSession
	}

	w.Exercises = models.ReindexExercises(exercises)
	w.UpdatedAt = m.clock.Now()

	if err := m.saveActive(ctx, w); err != nil {
		return models.Workout{}, err
	}
	return w, nil
}

// SaveActive validates and writes a workout into the active slot. The slot
// must never hold a completed record.
func (m *Manager) SaveActive(ctx context.Context, w models.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveActive(ctx, w)
}

func (m *Manager) saveActive(ctx context.Context, w models.Workout) error {
	if !w.Status.ActiveEligible() {
		return fmt.Errorf("saving workout %s with status %q: %w", w.ID, w.Status, ErrNotActiveEligible)
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("validating active workout: %w", err)
	}
	return m.store.Set(ctx, storage.KeyActiveWorkout, w)
}
