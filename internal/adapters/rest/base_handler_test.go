package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpress/inkpress/internal/adapters/rest"
	"github.com/inkpress/inkpress/internal/platform/apperror"
)

// mockLogger implements the logger.Logger interface for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(ctx context.Context, msg string, keysAndValues ...interface{}) {}

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name               string
		code               string
		message            string
		statusCode         int
		expectedBody       map[string]interface{}
		expectedStatusCode int
	}{
		{
			name:       "writes not found error",
			code:       "SLUG_NOT_FOUND",
			message:    "no post with that slug",
			statusCode: http.StatusNotFound,
			expectedBody: map[string]interface{}{
				"error":   "SLUG_NOT_FOUND",
				"message": "no post with that slug",
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:       "writes validation error",
			code:       "INVALID_FORMAT",
			message:    "invalid request body",
			statusCode: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"error":   "INVALID_FORMAT",
				"message": "invalid request body",
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := rest.NewBaseHandler(&mockLogger{})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			handler.WriteJSONError(rec, req, tt.code, tt.message, tt.statusCode)

			if rec.Code != tt.expectedStatusCode {
				t.Errorf("expected status code %d, got %d", tt.expectedStatusCode, rec.Code)
			}

			contentType := rec.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", contentType)
			}

			var response map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to parse response body: %v", err)
			}

			if response["error"] != tt.expectedBody["error"] {
				t.Errorf("expected error %v, got %v", tt.expectedBody["error"], response["error"])
			}
			if response["message"] != tt.expectedBody["message"] {
				t.Errorf("expected message %v, got %v", tt.expectedBody["message"], response["message"])
			}
		})
	}
}

func TestWriteJSONResponse(t *testing.T) {
	handler := rest.NewBaseHandler(&mockLogger{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	data := map[string]string{"status": "created"}
	handler.WriteJSONResponse(rec, req, data, http.StatusCreated)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status code %d, got %d", http.StatusCreated, rec.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	if response["status"] != "created" {
		t.Errorf("expected status created, got %v", response["status"])
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedErrorCode  string
	}{
		{
			name: "app error uses its own status and business code",
			err: apperror.New(
				apperror.CodeNotFound,
				apperror.BusinessCodePostNotFound,
				"post not found",
				http.StatusNotFound,
			),
			expectedStatusCode: http.StatusNotFound,
			expectedErrorCode:  "POST_NOT_FOUND",
		},
		{
			name: "wrapped app error is unwrapped",
			err: apperror.Wrap(
				errors.New("connection refused"),
				apperror.CodeInternalError,
				apperror.BusinessCodeStorageFailure,
				"storage operation failed",
				http.StatusInternalServerError,
			),
			expectedStatusCode: http.StatusInternalServerError,
			expectedErrorCode:  "STORAGE_FAILURE",
		},
		{
			name:               "unknown error becomes internal server error",
			err:                errors.New("something unexpected"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedErrorCode:  "GENERAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := rest.NewBaseHandler(&mockLogger{})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			if rec.Code != tt.expectedStatusCode {
				t.Errorf("expected status code %d, got %d", tt.expectedStatusCode, rec.Code)
			}

			var response map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to parse response body: %v", err)
			}
			if response["error"] != tt.expectedErrorCode {
				t.Errorf("expected error %v, got %v", tt.expectedErrorCode, response["error"])
			}
		})
	}
}

func TestHandleError_UnknownErrorDoesNotLeakDetail(t *testing.T) {
	handler := rest.NewBaseHandler(&mockLogger{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, errors.New("pq: password authentication failed for user postgres"))

	var response map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	if response["message"] != "internal server error" {
		t.Errorf("internal detail leaked into response: %v", response["message"])
	}
}
