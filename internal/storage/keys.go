package storage

import "strconv"

// Persisted key space. String keys, JSON values.
const (
	// KeyActiveWorkout holds the single in-progress or incomplete workout.
	KeyActiveWorkout = "workout:active"
	// KeyWorkoutIDs holds the history index: completed workout ids,
	// most-recent-first.
	KeyWorkoutIDs = "workouts:ids"
	// KeySettings holds the UserSettings singleton.
	KeySettings = "settings:preferences"
)

// WorkoutKey returns the key for a completed workout record.
func WorkoutKey(id string) string { return "workout:" + id }

// PlanKey returns the key for a workout plan record.
func PlanKey(id string) string { return "plan:" + id }

// PlansByDayKey returns the key for a weekday's plan id index (0-6).
func PlansByDayKey(day int) string { return "plans:byDay:" + strconv.Itoa(day) }
