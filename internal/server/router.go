package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"wellness_checkin/internal/handlers"
	"wellness_checkin/internal/observability"
)

func NewRouter(h *handlers.CheckinHandler, collector *observability.Collector, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(logger))
	r.Use(Metrics(collector))
	r.Use(middleware.Recoverer)

	r.Get("/", h.HandleIndex)
	r.Post("/checkin", h.HandleFormCheckin)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))

		r.Post("/checkin", h.HandleCheckin)
		r.Get("/entries", h.HandleGetEntries)
		r.Get("/trend", h.HandleGetTrend)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	return r
}
