package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/cache"
	"github.com/taskhub/taskhub/internal/config"
	"github.com/taskhub/taskhub/internal/handlers"
	"github.com/taskhub/taskhub/internal/middleware"
	"github.com/taskhub/taskhub/internal/repo"
	"github.com/taskhub/taskhub/internal/tasks"
)

// newRouter wires repositories, services, and handlers into the HTTP surface.
// rdb may be nil: the task cache then degrades to a pass-through and every
// read is served by the database.
func newRouter(db *sql.DB, rdb *redis.Client, cfg config.Config) http.Handler {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	issuer := auth.NewTokenIssuer(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.JWTExpireMinutes)*time.Minute,
		loc,
	)

	userRepo := repo.NewUserRepo(db)
	taskRepo := repo.NewTaskRepo(db)
	taskCache := cache.New(rdb, time.Duration(cfg.CacheTTLMinutes)*time.Minute)

	authSvc := auth.NewService(userRepo, auth.NewPasswordHasher(), issuer)
	taskSvc := tasks.NewService(taskRepo, taskCache)

	authHandler := &handlers.AuthHandler{Auth: authSvc}
	taskHandler := &handlers.TaskHandler{Tasks: taskSvc}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// Health and observability
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public auth surface
	r.Post("/register", authHandler.Register)
	r.Post("/token", authHandler.Token)
	r.Post("/logout", authHandler.Logout)

	// Task surface, bearer-token gated
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authSvc))
		r.Get("/tasks", taskHandler.List)
		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Put("/tasks/{id}", taskHandler.Toggle)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return r
}
