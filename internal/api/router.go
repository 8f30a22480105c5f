package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/card-binder-be/internal/api/handlers"
	"github.com/isdelr/card-binder-be/internal/auth"
	"github.com/isdelr/card-binder-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	corsOrigin string,
	sessions handlers.SessionStore,
	userService services.UserServiceProvider,
	collectionService services.CollectionServiceProvider,
	eventService services.EventServiceProvider,
	catalogClient handlers.CatalogProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, sessions, eventService)
	catalogHandler := handlers.NewCatalogHandler(catalogClient)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	eventHandler := handlers.NewEventHandler(eventService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Post("/logout", userHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(auth.SessionMiddleware(sessions))
				r.Get("/me", userHandler.GetMe)
			})
		})

		// Catalog lookups do not require a session; only collection
		// operations are gated.
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/cards", catalogHandler.Search)
			r.Get("/sets", catalogHandler.ListSets)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.SessionMiddleware(sessions))

			r.Route("/collection", func(r chi.Router) {
				r.Get("/", collectionHandler.List)
				r.Post("/", collectionHandler.Acquire)
				r.Delete("/{name}", collectionHandler.Remove)
			})

			r.Get("/events", eventHandler.GetRecent)
		})
	})

	return r
}
