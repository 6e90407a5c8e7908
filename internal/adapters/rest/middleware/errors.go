package middleware

import (
	"encoding/json"
	"net/http"
)

// Error codes used by middleware (lower_snake_case convention)
const (
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeInternalServerError = "internal_server_error"
)

// WriteJSONError writes a JSON error response in the same shape the REST
// handlers use.
func WriteJSONError(w http.ResponseWriter, code string, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]any{
		"error":   code,
		"message": message,
	}

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(errorResp)
}
