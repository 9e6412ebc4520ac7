package api

import (
	"net/http"

	"subtrack/src/config"
	sqldb "subtrack/src/db/sql"
	"subtrack/src/handlers"
	"subtrack/src/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(pool sqldb.Querier, cfg config.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ReadOnlyMiddleware(cfg.ReadOnly, "/api/admin/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

		// Subscriptions
		r.Get("/subscriptions", handlers.GetSubscriptions(pool))
		r.Post("/subscriptions", handlers.CreateSubscription(pool))
		r.Delete("/subscriptions/{id}", handlers.DeleteSubscription(pool))

		// Insights
		r.Get("/metrics", handlers.GetMetrics(pool))
		r.Get("/renewals", handlers.GetRenewals(pool, cfg.RenewalHorizonDays))
		r.Get("/export", handlers.ExportSubscriptions(pool, cfg.RenewalHorizonDays))

		// Cache
		r.Post("/admin/cache/clear/{cache_name}", handlers.ClearCache())
	})

	return r
}
