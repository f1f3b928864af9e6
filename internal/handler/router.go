/*
Package handler provides the HTTP handlers and routing setup for the task board.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"taskboard/internal/pkg/limiter"
	"taskboard/internal/pkg/logx"
	"taskboard/internal/pkg/resp"
)

const (
	RegisterRate  = 0.05
	RegisterBurst = 2
	CreateRate    = 1
	CreateBurst   = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	registerLimiter := limiter.NewIPRateLimiter(rate.Limit(RegisterRate), RegisterBurst)
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Task Board",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/session", func(session chi.Router) {
			session.Get("/", HandleGetSession(deps))
			session.Post("/login", HandleLogin(deps))
			session.Post("/logout", HandleLogout(deps))
		})

		rateLimitedRegister := registerLimiter.Middleware(HandleRegister(deps))
		api.Post("/users", rateLimitedRegister.ServeHTTP)
		api.Get("/users", HandleListUsers(deps))

		api.Get("/board", HandleGetBoard(deps))

		api.Route("/tasks", func(tasks chi.Router) {
			rateLimitedCreate := createLimiter.Middleware(HandleCreateTask(deps))
			tasks.Post("/", rateLimitedCreate.ServeHTTP)
			tasks.Post("/{id}/toggle", HandleToggleTask(deps))
			tasks.Post("/{id}/move", HandleMoveTask(deps))
			tasks.Delete("/{id}", HandleDeleteTask(deps))
			tasks.Post("/{id}/comments", HandleCreateComment(deps))
			tasks.Put("/{id}/draft", HandleSetDraft(deps))
		})
	})

	return r
}
