// Package timer implements duration accounting for workout sessions.
//
// The model is additive-epoch: AccumulatedTime holds the seconds captured at
// the last pause or stop, and StartTime marks the beginning of the current
// running interval. Resuming resets StartTime, so the total duration is
// always accumulated-at-last-freeze plus elapsed-since-last-resume, across
// any number of pause/resume cycles.
package timer

import (
	"fmt"
	"time"

	"github.com/meltforce/gymlog/internal/models"
)

// Clock provides the current time. Use RealClock in production and a fixed
// clock in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// ElapsedSeconds returns whole seconds between start and now, rounded down.
func ElapsedSeconds(start, now time.Time) int64 {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// CurrentDuration returns the workout's total duration in seconds as of now.
// Completed and paused workouts return the frozen accumulated time; running
// workouts add the interval since the last resume.
func CurrentDuration(w models.Workout, now time.Time) int64 {
	if w.Status == models.StatusCompleted || w.Paused() {
		return w.AccumulatedTime
	}
	return w.AccumulatedTime + ElapsedSeconds(w.StartTime, now)
}

// FreezeAccumulated returns the accumulated seconds to store when pausing or
// stopping. Idempotent for an already-paused workout so repeated pause calls
// cannot double-count the running interval.
func FreezeAccumulated(w models.Workout, now time.Time) int64 {
	if w.Paused() {
		return w.AccumulatedTime
	}
	return w.AccumulatedTime + ElapsedSeconds(w.StartTime, now)
}

// FormatTimer renders seconds as HH:MM:SS once an hour is reached, MM:SS
// below that, zero-padded.
func FormatTimer(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
