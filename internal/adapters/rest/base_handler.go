package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkpress/inkpress/internal/platform/apperror"
	"github.com/inkpress/inkpress/internal/platform/logger"
)

// errorResponse is the JSON body returned for any failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// WriteJSONError writes a JSON error response
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{
		Error:   code,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", code,
			"status_code", statusCode,
		)
	}
}

// HandleError translates an application error into an HTTP response. AppErrors
// carry their own status and codes; anything else is treated as an internal
// error so unexpected failures never leak detail to the client.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error(r.Context(), "unhandled error", "error", err)
		h.WriteJSONError(w, r, string(apperror.BusinessCodeGeneral), "internal server error", http.StatusInternalServerError)
		return
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", appErr,
			"business_code", appErr.BusinessCode,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)

	resp := errorResponse{
		Error:   string(appErr.BusinessCode),
		Message: appErr.Message,
		Details: appErr.Details,
	}

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", encErr,
			"business_code", appErr.BusinessCode,
		)
	}
}
