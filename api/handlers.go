package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/setidure/blog-api/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler blogHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(service *services.BlogService) *routeHandlers {
	return &routeHandlers{
		blogHandler: newBlogHandler(service),
	}
}

// health reports liveness. No auth, no store access.
func health() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())

	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"message":   "Blog API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
