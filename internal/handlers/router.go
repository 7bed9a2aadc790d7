package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterDeps はルーターが使うハンドラ群。Auth は DB がないとき nil。
type RouterDeps struct {
	Tracker *TrackerHandler
	Master  *MasterListHandler
	Auth    *AuthHandler
	Health  *HealthHandler
	Config  *config.Config
	Logger  *slog.Logger
}

// NewRouter は /api/v1 以下のルートとミドルウェアを組み立てる
func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	if deps.Health != nil {
		r.Get("/health", deps.Health.Health)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Get("/master-list.csv", deps.Master.ExportCSV)

		if deps.Auth != nil && cfg.Auth.Enabled {
			r.Post("/auth/magic-link", deps.Auth.RequestMagicLink)
			r.Post("/auth/verify", deps.Auth.Verify)
		}

		// --- Identity が必要なルート (端末IDまたはサインイン) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.IdentityMiddleware(cfg.JWT.SecretKey, cfg.Auth.Enabled))

			r.Post("/review", deps.Tracker.Review)
			r.Post("/log", deps.Tracker.Log)

			r.Route("/characters", func(r chi.Router) {
				r.Get("/", deps.Tracker.ListCharacters)
				r.Post("/status", deps.Tracker.GetStatus)
				r.Put("/{character}", deps.Tracker.SetStatus)
			})

			r.Get("/events", deps.Tracker.Events)
			r.Get("/summary", deps.Tracker.Summary)
			r.Get("/master", deps.Master.Search)
			r.Get("/lookup/{character}", deps.Tracker.Lookup)
			r.Post("/reset", deps.Tracker.Reset)

			if deps.Auth != nil && cfg.Auth.Enabled {
				r.With(middleware.RequireRemote).Get("/auth/me", deps.Auth.GetMe)
			}
		})
	})

	return r
}
