package models

import "time"

// WorkoutStatus is the lifecycle state of a workout record.
type WorkoutStatus string

const (
	StatusInProgress WorkoutStatus = "in-progress"
	StatusCompleted  WorkoutStatus = "completed"
	StatusIncomplete WorkoutStatus = "incomplete"
)

// Valid reports whether s is a known status.
func (s WorkoutStatus) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusIncomplete:
		return true
	}
	return false
}

// ActiveEligible reports whether a workout with this status may occupy the
// active slot. Completed workouts live only in history.
func (s WorkoutStatus) ActiveEligible() bool {
	return s == StatusInProgress || s == StatusIncomplete
}

// MaxSetsPerExercise bounds the sets recorded for a single exercise.
const MaxSetsPerExercise = 20

// SetEntry is a single set within an exercise. Mutable while the session is
// active, frozen once the workout completes.
type SetEntry struct {
	ID     string   `json:"id"`
	Reps   int      `json:"reps"`
	Order  int      `json:"order"`
	Weight *float64 `json:"weight"`
}

// Validate checks set-level constraints.
func (s SetEntry) Validate() error {
	if s.ID == "" {
		return invalidf("set id is required")
	}
	if s.Reps <= 0 {
		return invalidf("set %s: reps must be positive, got %d", s.ID, s.Reps)
	}
	if s.Order < 0 {
		return invalidf("set %s: order must be non-negative, got %d", s.ID, s.Order)
	}
	return nil
}

// Exercise is a single exercise performed during a workout.
type Exercise struct {
	ID           string        `json:"id"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
	Machine      GymMachine    `json:"machine"`
	Sets         []SetEntry    `json:"sets"`
	Order        int           `json:"order"`
	CreatedAt    time.Time     `json:"createdAt"`
	Notes        string        `json:"notes,omitempty"`
}

// Validate checks exercise-level constraints, including that sets are
// contiguously ordered (sets[i].Order == i).
func (e Exercise) Validate() error {
	if e.ID == "" {
		return invalidf("exercise id is required")
	}
	if len(e.MuscleGroups) == 0 {
		return invalidf("exercise %s: at least one muscle group is required", e.ID)
	}
	for _, g := range e.MuscleGroups {
		if !g.Valid() {
			return invalidf("exercise %s: unknown muscle group %q", e.ID, g)
		}
	}
	if !e.Machine.Valid() {
		return invalidf("exercise %s: unknown machine %q", e.ID, e.Machine)
	}
	if len(e.Sets) == 0 {
		return invalidf("exercise %s: at least one set is required", e.ID)
	}
	if len(e.Sets) > MaxSetsPerExercise {
		return invalidf("exercise %s: at most %d sets allowed, got %d", e.ID, MaxSetsPerExercise, len(e.Sets))
	}
	for i, s := range e.Sets {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Order != i {
			return invalidf("exercise %s: set order %d at position %d", e.ID, s.Order, i)
		}
	}
	return nil
}

// Workout is a training session with timer state. AccumulatedTime holds the
// seconds of runtime captured at the last pause or stop; while running, the
// interval since StartTime is added on top of it.
type Workout struct {
	ID              string        `json:"id"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         *time.Time    `json:"endTime"`
	PausedAt        *time.Time    `json:"pausedAt"`
	AccumulatedTime int64         `json:"accumulatedTime"`
	Status          WorkoutStatus `json:"status"`
	Exercises       []Exercise    `json:"exercises"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Paused reports whether the session clock is frozen.
func (w Workout) Paused() bool {
	return w.PausedAt != nil
}

// Validate checks workout-level constraints, including that exercises are
// contiguously ordered (exercises[i].Order == i).
func (w Workout) Validate() error {
	if w.ID == "" {
		return invalidf("workout id is required")
	}
	if !w.Status.Valid() {
		return invalidf("workout %s: unknown status %q", w.ID, w.Status)
	}
	if w.AccumulatedTime < 0 {
		return invalidf("workout %s: accumulated time must be non-negative, got %d", w.ID, w.AccumulatedTime)
	}
	if w.Status == StatusCompleted && w.EndTime == nil {
		return invalidf("workout %s: completed workout requires an end time", w.ID)
	}
	for i, e := range w.Exercises {
		if err := e.Validate(); err != nil {
			return err
		}
		if e.Order != i {
			return invalidf("workout %s: exercise order %d at position %d", w.ID, e.Order, i)
		}
	}
	return nil
}

// ReindexExercises rewrites exercise and set Order fields to match slice
// positions. Applied after any add or remove so the contiguous-order
// invariant holds.
func ReindexExercises(exercises []Exercise) []Exercise {
	for i := range exercises {
		exercises[i].Order = i
		exercises[i].Sets = ReindexSets(exercises[i].Sets)
	}
	return exercises
}

// ReindexSets rewrites Order fields to match slice positions.
func ReindexSets(sets []SetEntry) []SetEntry {
	for i := range sets {
		sets[i].Order = i
	}
	return sets
}
