package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkpress/inkpress/internal/adapters/rest"
	"github.com/inkpress/inkpress/internal/adapters/rest/middleware"
	"github.com/inkpress/inkpress/internal/platform/logger"
)

// NewHTTPServer creates and configures the HTTP server with all routes
func NewHTTPServer(
	config Config,
	postsHandler *rest.PostsHandler,
	pagesHandler *rest.PagesHandler,
	healthHandler *rest.HealthHandler,
	log logger.Logger,
) *http.Server {
	// Create chi router
	r := chi.NewRouter()

	// Probes live outside the page root so a fronting proxy can always
	// reach them.
	r.Get("/healthz/live", healthHandler.GetLiveness)
	r.Get("/healthz/ready", healthHandler.GetReadiness)

	root := config.PageRoot
	if root == "" {
		root = "/"
	}

	r.Route(root, func(r chi.Router) {
		// Authoring endpoints, guarded when credentials are configured
		r.Route("/.blog", func(r chi.Router) {
			r.Use(middleware.BasicAuth(middleware.BasicAuthConfig{
				Username: config.BasicAuthUser,
				Password: config.BasicAuthPassword,
				Realm:    config.BasicAuthRealm,
			}))
			r.Post("/publish", postsHandler.Publish)
			r.Post("/publish/{id}", postsHandler.Update)
		})

		// Public pages
		r.Get("/", pagesHandler.GetIndex)
		r.Get("/{slug}", pagesHandler.GetPage)
	})

	// Wrap with observability middleware
	handler := withObservability(r, log)

	// Create and return HTTP server
	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// withObservability adds request logging
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Use chi's response writer wrapper to capture status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		// Process the request
		handler.ServeHTTP(wrr, r)

		// Log request details
		duration := time.Since(start)

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"bytes", wrr.BytesWritten(),
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}
