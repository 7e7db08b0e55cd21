package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/blogcraft/internal/api/middleware"
)

// NewRouter creates the bridge router with standard middleware, the blog
// routes and a health check. Callers may mount further handlers on the
// returned router.
func NewRouter(blogHandler *BlogHandler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/blog", blogHandler.Generate)
		r.Post("/blog/export", blogHandler.Export)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
