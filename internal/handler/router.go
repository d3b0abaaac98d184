// Package handler implements the HTTP API and pages.
package handler

import (
	"context"
	"net/http"

	"wordofday/internal/domain"
	"wordofday/internal/metrics"
	"wordofday/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// UserServiceInterface is the user service the handlers need
type UserServiceInterface interface {
	Register(ctx context.Context, name, email string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}

// WordServiceInterface is the word service the handlers need
type WordServiceInterface interface {
	Create(ctx context.Context, input domain.WordInput) (*domain.Word, error)
	BulkCreate(ctx context.Context, inputs []domain.WordInput) (int, error)
	List(ctx context.Context, skip, limit int) ([]domain.Word, error)
	Today(ctx context.Context) (*domain.Word, error)
}

// Pinger checks database connectivity
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps groups the dependencies of NewRouter
type RouterDeps struct {
	UserService UserServiceInterface
	WordService WordServiceInterface
	DB          Pinger

	Logger              *zap.Logger
	Metrics             *metrics.Collector
	Gatherer            prometheus.Gatherer
	CORSAllowedOrigins  []string
	RegistrationLimiter *middleware.RateLimiter
}

// NewRouter wires every route and the middleware stack:
//
//	Recovery → Logging → CORS
//
// Registration additionally passes through the per-IP rate limiter.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))

	userHandler := NewUserHandler(deps.UserService, deps.Logger)
	wordHandler := NewWordHandler(deps.WordService, deps.Logger)

	r.Get("/", servePage(indexPage))
	r.Get("/admin", servePage(adminPage))

	r.Route("/users", func(r chi.Router) {
		if deps.RegistrationLimiter != nil {
			r.With(deps.RegistrationLimiter.Middleware()).Post("/", userHandler.Register)
		} else {
			r.Post("/", userHandler.Register)
		}
		r.Get("/count", userHandler.Count)
	})

	r.Route("/words", func(r chi.Router) {
		r.Post("/", wordHandler.Create)
		r.Post("/bulk", wordHandler.BulkCreate)
		r.Get("/", wordHandler.List)
		r.Get("/today", wordHandler.Today)
	})

	r.Get("/healthz", healthHandler(deps.DB, deps.Logger))
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			middleware.WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
