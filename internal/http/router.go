package httpapi

import (
	"net/http"
	"time"

	"cafeboard-analytics-service/internal/config"
	"cafeboard-analytics-service/internal/http/handlers"
	"cafeboard-analytics-service/internal/middleware"
	"cafeboard-analytics-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(snapshot *store.Snapshot, logger *zap.Logger, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	h := &handlers.Handler{Snapshot: snapshot, Logger: logger, Config: cfg, Now: time.Now}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/analytics/sales", h.SalesAnalytics)
		r.Get("/analytics/sales/export", h.SalesReportExport)
		r.Get("/analytics/years", h.AvailableYears)

		r.Get("/orders/recent", h.RecentSales)
		r.Post("/orders/snapshot", h.SnapshotReplace)
		r.Post("/orders", h.OrderUpsert)
	})

	return r
}
