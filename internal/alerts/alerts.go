// Package alerts schedules the workout-duration notification side effect.
// Scheduling is fire-and-forget: failures are logged, never propagated into
// session transitions.
package alerts

import (
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/timer"
)

// DurationAlertThreshold is the session runtime after which the user is
// nudged to take a break.
const DurationAlertThreshold = 3 * time.Hour

// Scheduler arms a one-shot alert when a session becomes active and disarms
// it when the session pauses, stops or is discarded. At most one alert is
// armed at a time.
type Scheduler struct {
	clock timer.Clock
	log   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	fire  func(workoutID string)
}

// NewScheduler creates an alert scheduler.
func NewScheduler(clock timer.Clock, log *slog.Logger) *Scheduler {
	s := &Scheduler{clock: clock, log: log}
	s.fire = s.logAlert
	return s
}

// ScheduleDurationAlert arms the alert for the threshold mark, net of time
// the session has already accumulated. Sessions already past the threshold
// get no alert.
func (s *Scheduler) ScheduleDurationAlert(w models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()

	remaining := remainingUntilAlert(w, s.clock.Now())
	if remaining <= 0 {
		return
	}

	id := w.ID
	s.timer = time.AfterFunc(remaining, func() { s.fire(id) })
	s.log.Info("duration alert scheduled", "workout", id, "in", remaining.String())
}

// CancelAlerts disarms any pending alert.
func (s *Scheduler) CancelAlerts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) logAlert(workoutID string) {
	s.log.Info("workout duration alert", "workout", workoutID,
		"threshold", DurationAlertThreshold.String())
}

func remainingUntilAlert(w models.Workout, now time.Time) time.Duration {
	elapsed := time.Duration(timer.CurrentDuration(w, now)) * time.Second
	return DurationAlertThreshold - elapsed
}
