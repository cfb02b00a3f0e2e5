package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/vv-omkareshwar/Task-Management-App/internal/service"
)

// RouterConfig carries the handler-level settings.
type RouterConfig struct {
	AllowedOrigins []string
	CookieMaxAge   int // seconds; should match the token TTL
	CookieSecure   bool
}

// NewRouter builds the API router. Signup and login are the only task-facing
// routes outside the auth gate.
func NewRouter(auth *service.AuthService, tasks *service.TaskService, cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(auth, cfg.CookieMaxAge, cfg.CookieSecure)
	taskHandler := NewTaskHandler(tasks)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "auth-token"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", HandleHealthz)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(auth))
			r.Get("/userdetails", authHandler.HandleUserDetails)
			r.Put("/user", authHandler.HandleChangePassword)
		})
	})

	r.Route("/api/task", func(r chi.Router) {
		r.Use(RequireAuth(auth))
		r.Get("/", taskHandler.HandleList)
		r.Post("/", taskHandler.HandleCreate)
		r.Put("/{id}", taskHandler.HandleUpdate)
		r.Delete("/{id}", taskHandler.HandleDelete)
	})

	return r
}
