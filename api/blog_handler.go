package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/setidure/blog-api/errs"
	"github.com/setidure/blog-api/models"
	"github.com/setidure/blog-api/services"
	"github.com/setidure/blog-api/store"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.BlogService
}

func newBlogHandler(service *services.BlogService) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// listBlogs returns the full collection. Store read faults have already been
// degraded to an empty collection by the service, so this never fails.
func (h blogHandler) listBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts := h.service.List(r.Context())

		h.responder.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    posts,
			"count":   len(posts),
		})
	}
}

// getBlog returns a single post looked up by its slug.
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.service.GetBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    post,
		})
	}
}

// createBlog validates the submission and appends a new post.
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, ok := h.decodeSubmission(w, r)
		if !ok {
			return
		}

		post, err := h.service.Create(r.Context(), sub)
		if err != nil {
			h.responder.WriteError(w, h.mapStoreError(err, "Failed to create blog post"))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "Blog post created successfully",
			"data":    post,
		})
	}
}

// updateBlog replaces an existing post identified by numeric id.
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.parseID(w, r)
		if !ok {
			return
		}

		sub, decoded := h.decodeSubmission(w, r)
		if !decoded {
			return
		}

		post, err := h.service.Update(r.Context(), id, sub)
		if err != nil {
			h.responder.WriteError(w, h.mapStoreError(err, "Failed to update blog post"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Blog post updated successfully",
			"data":    post,
		})
	}
}

// deleteBlog removes a post and returns the removed record.
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.parseID(w, r)
		if !ok {
			return
		}

		post, err := h.service.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, h.mapStoreError(err, "Failed to delete blog post"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Blog post deleted successfully",
			"data":    post,
		})
	}
}

func (h blogHandler) decodeSubmission(w http.ResponseWriter, r *http.Request) (models.BlogPostSubmission, bool) {
	var sub models.BlogPostSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Warn().Err(err).Msg("failed to decode blog post submission")
		h.responder.WriteError(w, errs.NewBadRequestError("Malformed request body"))
		return models.BlogPostSubmission{}, false
	}
	return sub, true
}

// parseID treats a non-numeric id the same as an unknown one: the record
// cannot exist, so the client sees 404 either way.
func (h blogHandler) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
		return 0, false
	}
	return id, true
}

// mapStoreError converts a store write failure into a generic 500 carrying
// the operation-specific message; internal detail stays in the logs.
func (h blogHandler) mapStoreError(err error, message string) error {
	if errors.Is(err, store.ErrWrite) || errors.Is(err, store.ErrRead) {
		return errs.NewInternalError(message, err)
	}
	return err
}
