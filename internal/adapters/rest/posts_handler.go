package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/platform/apperror"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

// publishRequest is the JSON body for publishing or updating a post.
type publishRequest struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
	Content  string  `json:"content"`
}

// revisionResponse reports where a successful publish or update landed.
type revisionResponse struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	URL  string    `json:"url"`
}

// PageRoot is the path prefix under which pages are served. Distinct type
// so wire can tell it apart from other string config.
type PageRoot string

// PostsHandler handles the authoring endpoints: publish and update.
type PostsHandler struct {
	*BaseHandler
	coordinator ports.RevisionCoordinator
	pageRoot    string
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(base *BaseHandler, coordinator ports.RevisionCoordinator, pageRoot PageRoot) *PostsHandler {
	return &PostsHandler{
		BaseHandler: base,
		coordinator: coordinator,
		pageRoot:    string(pageRoot),
	}
}

// Publish creates a new post and mints its slug.
func (h *PostsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, string(apperror.BusinessCodeInvalidFormat), "invalid request body", http.StatusBadRequest)
		return
	}

	params := ports.RevisionParams{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
	}

	result, err := h.coordinator.Publish(r.Context(), params)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, h.toResponse(result), http.StatusCreated)
}

// Update revises an existing post. A title change mints a fresh slug and
// retargets the old ones; the response carries whichever slug is canonical
// afterwards.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteJSONError(w, r, string(apperror.BusinessCodeInvalidFormat), "invalid post id", http.StatusBadRequest)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, string(apperror.BusinessCodeInvalidFormat), "invalid request body", http.StatusBadRequest)
		return
	}

	params := ports.RevisionParams{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
	}

	result, err := h.coordinator.Update(r.Context(), id, params)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, h.toResponse(result), http.StatusOK)
}

func (h *PostsHandler) toResponse(result *ports.RevisionResult) revisionResponse {
	return revisionResponse{
		ID:   result.ID,
		Slug: result.Slug,
		URL:  h.pageRoot + "/" + result.Slug,
	}
}
