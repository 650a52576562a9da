package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AymanChabbaki/tutor-MVP/internal/api"
	apiMiddleware "github.com/AymanChabbaki/tutor-MVP/internal/api/middleware"
	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.userService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)
	collectionHandler := api.NewCollectionHandler(app.collectionService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Get("/auth/validate", authHandler.ValidateToken)
			r.Put("/auth/language", authHandler.UpdateLanguage)

			// Content generation endpoints
			r.Post("/summarize", studyHandler.Summarize)
			r.Post("/explain", studyHandler.Explain)
			r.Post("/generate-exercises", studyHandler.GenerateExercises)

			// Session history endpoints
			r.Get("/sessions", sessionHandler.List)
			r.Get("/sessions/{id}", sessionHandler.Get)
			r.Delete("/sessions/{id}", sessionHandler.Delete)
			r.Put("/sessions/{id}/collection", sessionHandler.AssignCollection)

			// Collection endpoints
			r.Post("/collections", collectionHandler.Create)
			r.Get("/collections", collectionHandler.List)
			r.Get("/collections/{id}", collectionHandler.Get)
			r.Put("/collections/{id}", collectionHandler.Update)
			r.Delete("/collections/{id}", collectionHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Service banner for the root path
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"service": "tutor-api",
			"status":  "running",
		})
	})

	return r
}
