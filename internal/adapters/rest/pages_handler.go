package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkpress/inkpress/internal/platform/apperror"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

// PagesHandler serves the public HTML pages: individual posts by slug and
// the recent-posts index.
type PagesHandler struct {
	*BaseHandler
	coordinator ports.RevisionCoordinator
	renderer    ports.Renderer
	pageRoot    string
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(base *BaseHandler, coordinator ports.RevisionCoordinator, renderer ports.Renderer, pageRoot PageRoot) *PagesHandler {
	return &PagesHandler{
		BaseHandler: base,
		coordinator: coordinator,
		renderer:    renderer,
		pageRoot:    string(pageRoot),
	}
}

// GetPage resolves a slug and serves the post. A superseded slug answers
// with a permanent redirect to the canonical address instead of a body.
func (h *PagesHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.coordinator.ReadBySlug(r.Context(), slug)
	if err != nil {
		h.writePageError(w, r, err)
		return
	}

	if result.RedirectTo != "" {
		http.Redirect(w, r, h.pageRoot+"/"+result.RedirectTo, http.StatusMovedPermanently)
		return
	}

	body, err := h.renderer.RenderPost(r.Context(), result.Post)
	if err != nil {
		h.logger.Error(r.Context(), "failed to render post",
			"error", err,
			"post_id", result.Post.ID,
		)
		h.writePageError(w, r, err)
		return
	}

	h.writeHTML(w, r, body, http.StatusOK)
}

// GetIndex serves the recent-posts index page.
func (h *PagesHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.coordinator.ListRecent(r.Context())
	if err != nil {
		h.writePageError(w, r, err)
		return
	}

	body, err := h.renderer.RenderIndex(r.Context(), posts)
	if err != nil {
		h.logger.Error(r.Context(), "failed to render index", "error", err)
		h.writePageError(w, r, err)
		return
	}

	h.writeHTML(w, r, body, http.StatusOK)
}

func (h *PagesHandler) writeHTML(w http.ResponseWriter, r *http.Request, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		h.logger.Error(r.Context(), "failed to write page", "error", err)
	}
}

// writePageError renders errors as plain text; an HTML page request has no
// use for the JSON error envelope.
func (h *PagesHandler) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error(r.Context(), "unhandled error", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", appErr,
			"business_code", appErr.BusinessCode,
		)
		http.Error(w, "internal server error", appErr.HTTPStatus)
		return
	}

	http.Error(w, appErr.Message, appErr.HTTPStatus)
}
