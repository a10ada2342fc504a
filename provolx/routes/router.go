package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"provolx/provolx/config"
	"provolx/provolx/controllers"
	"provolx/provolx/middlewares"
)

// NewRouter assembles the public HTTP surface.
func NewRouter(cfg config.Config, health *controllers.HealthController, chat *controllers.ChatController) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middlewares.TraceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", health.Root)
	r.Mount("/health", HealthRoutes(health))
	r.Mount("/chat", ChatRoutes(chat))
	return r
}
