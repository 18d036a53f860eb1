package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public read endpoints and the key-gated mutation
// endpoints, plus the health check and the JSON 404/405 fallbacks.
func setupRoutes(r chi.Router, handlers *routeHandlers, apiKey string, responder Responder) {
	r.Get("/health", health())

	r.Route("/api", func(r chi.Router) {
		// Public read endpoints
		r.Get("/blogs", handlers.blogHandler.listBlogs())
		r.Get("/blogs/{slug}", handlers.blogHandler.getBlog())

		// Mutations require the shared API key
		r.Group(func(r chi.Router) {
			r.Use(requireAPIKey(apiKey, responder))

			r.Post("/blogs", handlers.blogHandler.createBlog())
			r.Put("/blogs/{id}", handlers.blogHandler.updateBlog())
			r.Delete("/blogs/{id}", handlers.blogHandler.deleteBlog())
		})
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		responder.WriteJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Endpoint not found",
		})
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
}
