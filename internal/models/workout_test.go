package models

import (
	"testing"
	"time"
)

func validExercise() Exercise {
	return Exercise{
		ID:           "e1",
		MuscleGroups: []MuscleGroup{"Chest", "Triceps"},
		Machine:      "Bench Press",
		Sets: []SetEntry{
			{ID: "s1", Reps: 8, Order: 0},
			{ID: "s2", Reps: 8, Order: 1},
		},
		Order:     0,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestExerciseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Exercise)
		wantErr bool
	}{
		{"valid", func(e *Exercise) {}, false},
		{"missing id", func(e *Exercise) { e.ID = "" }, true},
		{"no muscle groups", func(e *Exercise) { e.MuscleGroups = nil }, true},
		{"unknown muscle group", func(e *Exercise) { e.MuscleGroups = []MuscleGroup{"Neck"} }, true},
		{"unknown machine", func(e *Exercise) { e.Machine = "Hoverboard" }, true},
		{"no sets", func(e *Exercise) { e.Sets = nil }, true},
		{"zero reps", func(e *Exercise) { e.Sets[0].Reps = 0 }, true},
		{"set order gap", func(e *Exercise) { e.Sets[1].Order = 5 }, true},
		{
			"too many sets",
			func(e *Exercise) {
				e.Sets = nil
				for i := 0; i <= MaxSetsPerExercise; i++ {
					e.Sets = append(e.Sets, SetEntry{ID: "s", Reps: 5, Order: i})
				}
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExercise()
			tt.mutate(&e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkoutValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	base := func() Workout {
		return Workout{
			ID:        "temp-w1",
			StartTime: start,
			Status:    StatusInProgress,
			Exercises: []Exercise{validExercise()},
			CreatedAt: start,
			UpdatedAt: start,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Workout)
		wantErr bool
	}{
		{"valid in-progress", func(w *Workout) {}, false},
		{"valid completed", func(w *Workout) {
			w.Status = StatusCompleted
			w.EndTime = &end
		}, false},
		{"missing id", func(w *Workout) { w.ID = "" }, true},
		{"unknown status", func(w *Workout) { w.Status = "archived" }, true},
		{"negative accumulated time", func(w *Workout) { w.AccumulatedTime = -1 }, true},
		{"completed without end time", func(w *Workout) { w.Status = StatusCompleted }, true},
		{"exercise order gap", func(w *Workout) { w.Exercises[0].Order = 3 }, true},
		{"no exercises is fine", func(w *Workout) { w.Exercises = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := base()
			tt.mutate(&w)
			err := w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestActiveEligible(t *testing.T) {
	tests := []struct {
		status WorkoutStatus
		want   bool
	}{
		{StatusInProgress, true},
		{StatusIncomplete, true},
		{StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.status.ActiveEligible(); got != tt.want {
			t.Errorf("ActiveEligible(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestReindexExercises(t *testing.T) {
	exercises := []Exercise{
		{ID: "a", Order: 4, Sets: []SetEntry{{ID: "s1", Reps: 5, Order: 9}}},
		{ID: "b", Order: 0, Sets: []SetEntry{{ID: "s2", Reps: 5, Order: 2}, {ID: "s3", Reps: 5, Order: 0}}},
	}

	got := ReindexExercises(exercises)
	for i, e := range got {
		if e.Order != i {
			t.Errorf("exercise %d order = %d, want %d", i, e.Order, i)
		}
		for j, s := range e.Sets {
			if s.Order != j {
				t.Errorf("exercise %d set %d order = %d, want %d", i, j, s.Order, j)
			}
		}
	}
}
