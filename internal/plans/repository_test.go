package plans

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestRepo(t *testing.T) (*Repository, *storage.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.Open(t.TempDir(), log)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return NewRepository(store, clock, log), store
}

func testPlan(id string, day int) models.WorkoutPlan {
	return models.WorkoutPlan{
		ID:        id,
		DayOfWeek: day,
		Name:      "Push Day",
		PlannedExercises: []models.PlannedExercise{
			{
				ID:           id + "-e1",
				MuscleGroups: []models.MuscleGroup{"Chest"},
				Machine:      models.GymMachine("Bench Press"),
				TargetSets:   3,
				TargetReps:   8,
				Order:        0,
			},
		},
	}
}

func TestSaveAndByDay(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testPlan("p1", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.ByDay(ctx, 1)
	if err != nil {
		t.Fatalf("ByDay() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("ByDay(1) = %v, want [p1]", got)
	}
	if got[0].CreatedAt.IsZero() || got[0].UpdatedAt.IsZero() {
		t.Error("Save() did not stamp timestamps")
	}

	empty, err := repo.ByDay(ctx, 2)
	if err != nil {
		t.Fatalf("ByDay() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ByDay(2) = %v, want empty", empty)
	}
}

func TestSaveDoesNotDuplicateIndexEntry(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	plan := testPlan("p1", 3)
	if err := repo.Save(ctx, plan); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	plan.Name = "Renamed"
	if err := repo.Save(ctx, plan); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	ids := store.Index(ctx, storage.PlansByDayKey(3))
	if len(ids) != 1 {
		t.Errorf("day index = %v, want single entry", ids)
	}

	got, ok := repo.ByID(ctx, "p1")
	if !ok {
		t.Fatal("ByID() = false after update")
	}
	if got.Name != "Renamed" {
		t.Errorf("plan name = %q, want %q", got.Name, "Renamed")
	}
}

// TestSaveMigratesDayIndex moves a plan to a different weekday and checks it
// only surfaces under the new day.
func TestSaveMigratesDayIndex(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	plan := testPlan("p1", 1)
	if err := repo.Save(ctx, plan); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	plan.DayOfWeek = 4
	if err := repo.Save(ctx, plan); err != nil {
		t.Fatalf("Save() after day change error = %v", err)
	}

	if ids := store.Index(ctx, storage.PlansByDayKey(1)); len(ids) != 0 {
		t.Errorf("old day index = %v, want empty", ids)
	}
	if ids := store.Index(ctx, storage.PlansByDayKey(4)); len(ids) != 1 || ids[0] != "p1" {
		t.Errorf("new day index = %v, want [p1]", ids)
	}
}

func TestSaveRejectsInvalidPlan(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.WorkoutPlan)
	}{
		{"empty name", func(p *models.WorkoutPlan) { p.Name = "" }},
		{"day out of range", func(p *models.WorkoutPlan) { p.DayOfWeek = 7 }},
		{"no exercises", func(p *models.WorkoutPlan) { p.PlannedExercises = nil }},
		{"zero target sets", func(p *models.WorkoutPlan) { p.PlannedExercises[0].TargetSets = 0 }},
		{"target sets over cap", func(p *models.WorkoutPlan) { p.PlannedExercises[0].TargetSets = 21 }},
		{"zero target reps", func(p *models.WorkoutPlan) { p.PlannedExercises[0].TargetReps = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testPlan("p1", 1)
			tt.mutate(&plan)
			err := repo.Save(ctx, plan)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Save() error = %v, want validation error", err)
			}
		})
	}
}

func TestByDayOutOfRange(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, day := range []int{-1, 7} {
		if _, err := repo.ByDay(context.Background(), day); !errors.Is(err, ErrInvalidDay) {
			t.Errorf("ByDay(%d) error = %v, want ErrInvalidDay", day, err)
		}
	}
}

func TestByDayFiltersDanglingEntries(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testPlan("p1", 2)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// Plant an index entry whose record is missing.
	ids := store.Index(ctx, storage.PlansByDayKey(2))
	if err := store.SetIndex(ctx, storage.PlansByDayKey(2), append(ids, "ghost")); err != nil {
		t.Fatalf("SetIndex() error = %v", err)
	}

	got, err := repo.ByDay(ctx, 2)
	if err != nil {
		t.Fatalf("ByDay() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("ByDay(2) = %v, want only p1", got)
	}
}

func TestDelete(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testPlan("p1", 5)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, ok := repo.ByID(ctx, "p1"); ok {
		t.Error("ByID() = true after Delete")
	}
	if ids := store.Index(ctx, storage.PlansByDayKey(5)); len(ids) != 0 {
		t.Errorf("day index after delete = %v, want empty", ids)
	}

	// Deleting an absent plan is a no-op.
	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Errorf("Delete() on absent plan error = %v", err)
	}
}
