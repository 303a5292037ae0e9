package models

import (
	"strings"
	"time"
)

// PlannedExercise is a template exercise within a workout plan. It is never
// executed directly; starting a session from a plan materializes it into an
// Exercise with TargetSets sets of TargetReps reps each.
type PlannedExercise struct {
	ID           string        `json:"id"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
	Machine      GymMachine    `json:"machine"`
	TargetSets   int           `json:"targetSets"`
	TargetReps   int           `json:"targetReps"`
	Order        int           `json:"order"`
	Notes        string        `json:"notes,omitempty"`
}

// Validate checks template-level constraints.
func (p PlannedExercise) Validate() error {
	if p.ID == "" {
		return invalidf("planned exercise id is required")
	}
	if len(p.MuscleGroups) == 0 {
		return invalidf("planned exercise %s: at least one muscle group is required", p.ID)
	}
	for _, g := range p.MuscleGroups {
		if !g.Valid() {
			return invalidf("planned exercise %s: unknown muscle group %q", p.ID, g)
		}
	}
	if !p.Machine.Valid() {
		return invalidf("planned exercise %s: unknown machine %q", p.ID, p.Machine)
	}
	if p.TargetSets < 1 || p.TargetSets > MaxSetsPerExercise {
		return invalidf("planned exercise %s: target sets must be 1..%d, got %d", p.ID, MaxSetsPerExercise, p.TargetSets)
	}
	if p.TargetReps <= 0 {
		return invalidf("planned exercise %s: target reps must be positive, got %d", p.ID, p.TargetReps)
	}
	if p.Order < 0 {
		return invalidf("planned exercise %s: order must be non-negative, got %d", p.ID, p.Order)
	}
	return nil
}

// WorkoutPlan is a reusable workout template pinned to one weekday
// (0 = Sunday .. 6 = Saturday).
type WorkoutPlan struct {
	ID               string            `json:"id"`
	DayOfWeek        int               `json:"dayOfWeek"`
	Name             string            `json:"name"`
	PlannedExercises []PlannedExercise `json:"plannedExercises"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Validate checks plan-level constraints.
func (p WorkoutPlan) Validate() error {
	if p.ID == "" {
		return invalidf("plan id is required")
	}
	if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
		return invalidf("plan %s: day of week must be 0..6, got %d", p.ID, p.DayOfWeek)
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalidf("plan %s: name is required", p.ID)
	}
	if len(p.PlannedExercises) == 0 {
		return invalidf("plan %s: at least one planned exercise is required", p.ID)
	}
	for i, e := range p.PlannedExercises {
		if err := e.Validate(); err != nil {
			return err
		}
		if e.Order != i {
			return invalidf("plan %s: planned exercise order %d at position %d", p.ID, e.Order, i)
		}
	}
	return nil
}

// ReindexPlannedExercises rewrites Order fields to match slice positions.
func ReindexPlannedExercises(exercises []PlannedExercise) []PlannedExercise {
	for i := range exercises {
		exercises[i].Order = i
	}
	return exercises
}
