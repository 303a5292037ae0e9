package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gymlog/internal/cache"
	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/plans"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/settings"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	sessions *session.Manager
	plans    *plans.Repository
	history  *history.Repository
	settings *settings.Repository
	log      *slog.Logger
	apiKey   string
	router   chi.Router

	// Read-through caches in front of the repositories. Mutating handlers
	// invalidate the keys they touch.
	activeCache  *cache.ReadThrough[*models.Workout]
	planCache    *cache.ReadThrough[[]models.WorkoutPlan]
	historyCache *cache.ReadThrough[history.Batch]
}

// New creates a new Server with all routes configured.
func New(sessions *session.Manager, planRepo *plans.Repository, historyRepo *history.Repository, settingsRepo *settings.Repository, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		sessions: sessions,
		plans:    planRepo,
		history:  historyRepo,
		settings: settingsRepo,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),

		activeCache:  cache.New[*models.Workout]("active_session", cache.DefaultExpiration, cache.DefaultCleanupInterval, log),
		planCache:    cache.New[[]models.WorkoutPlan]("plans_by_day", cache.DefaultExpiration, cache.DefaultCleanupInterval, log),
		historyCache: cache.New[history.Batch]("workout_history", cache.DefaultExpiration, cache.DefaultCleanupInterval, log),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleActiveSession)
			r.Post("/start", s.handleStartSession)
			r.Post("/pause", s.handlePauseSession)
			r.Post("/resume", s.handleResumeSession)
			r.Post("/stop", s.handleStopSession)
			r.Post("/discard", s.handleDiscardSession)
			r.Put("/exercises", s.handleUpdateExercises)
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", s.handleWorkoutHistory)
			r.Get("/count", s.handleWorkoutCount)
			r.Get("/{id}", s.handleGetWorkout)
			r.Put("/{id}", s.handleUpdateWorkout)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.handlePlansByDay)
			r.Post("/", s.handleSavePlan)
			r.Get("/{id}", s.handleGetPlan)
			r.Delete("/{id}", s.handleDeletePlan)
		})

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
	})
}
