package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpress/inkpress/internal/adapters/rest/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuth_DisabledWhenNoUser(t *testing.T) {
	guard := middleware.BasicAuth(middleware.BasicAuthConfig{})

	req := httptest.NewRequest(http.MethodPost, "/.blog/publish", nil)
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected passthrough, got status %d", rec.Code)
	}
}

func TestBasicAuth_ValidCredentials(t *testing.T) {
	guard := middleware.BasicAuth(middleware.BasicAuthConfig{
		Username: "author",
		Password: "secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/.blog/publish", nil)
	req.SetBasicAuth("author", "secret")
	rec := httptest.NewRecorder()

	guard(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestBasicAuth_RejectsBadCredentials(t *testing.T) {
	guard := middleware.BasicAuth(middleware.BasicAuthConfig{
		Username: "author",
		Password: "secret",
		Realm:    "authoring",
	})

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{
			name:  "missing credentials",
			setup: func(r *http.Request) {},
		},
		{
			name: "wrong password",
			setup: func(r *http.Request) {
				r.SetBasicAuth("author", "wrong")
			},
		},
		{
			name: "wrong user",
			setup: func(r *http.Request) {
				r.SetBasicAuth("intruder", "secret")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/.blog/publish", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			guard(okHandler()).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="authoring"` {
				t.Errorf("unexpected challenge header: %s", got)
			}
		})
	}
}
