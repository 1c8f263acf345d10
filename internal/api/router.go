package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/triply/triply-be/internal/api/handlers"
	"github.com/triply/triply-be/internal/auth"
	"github.com/triply/triply-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	storyService services.StoryServiceProvider,
	tripService services.TripServiceProvider,
	imageService services.ImageServiceProvider,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	storyHandler := handlers.NewStoryHandler(storyService)
	tripHandler := handlers.NewTripHandler(tripService)
	imageHandler := handlers.NewImageHandler(imageService)

	// Public routes
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Travel Story & Planner backend is live!"))
	})
	r.Post("/create-account", userHandler.Register)
	r.Post("/login", userHandler.Login)

	// Uploaded images are publicly resolvable
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(imageService.UploadsPath())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	// Bearer-protected routes
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware())

		r.Get("/get-user", userHandler.GetMe)

		r.Post("/add-travel-story", storyHandler.Create)
		r.Get("/get-all-stories", storyHandler.GetAll)
		r.Put("/edit-travel-story/{id}", storyHandler.Update)
		r.Delete("/delete-travel-story/{id}", storyHandler.Delete)
		r.Put("/update-favourite/{id}", storyHandler.UpdateFavourite)
		r.Get("/search/filter", storyHandler.Search)
		r.Get("/travel-stories/filter", storyHandler.FilterByDate)

		r.Route("/future-trips", func(r chi.Router) {
			r.Get("/", tripHandler.GetAll)
			r.Post("/", tripHandler.Create)
			r.Put("/{id}", tripHandler.Update)
			r.Delete("/{id}", tripHandler.Delete)
		})

		r.Post("/image-upload", imageHandler.Upload)
		r.Delete("/delete-image", imageHandler.Delete)
	})

	return r
}
