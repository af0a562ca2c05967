package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/CtIaMbaCK/betterus-server/internal/api"
	"github.com/CtIaMbaCK/betterus-server/internal/config"
	"github.com/CtIaMbaCK/betterus-server/internal/db"
	"github.com/CtIaMbaCK/betterus-server/internal/jobs"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/middleware"
	"github.com/CtIaMbaCK/betterus-server/internal/workers"
)

// RegisterRoutes assembles the router, wires dependencies, and starts the
// background jobs, the notification worker, and the chat hub.
func RegisterRoutes(cfg *config.Config, upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	handlers := api.NewHandlers(deps)

	// Chat hub run loop; serves every websocket client.
	go deps.Services.Hub.Run()

	// Campaign status roller and notification worker.
	jobs.InitializeJobs(context.Background(), deps.Services.Campaigns)
	workers.InitWorkers(context.Background(), deps.Services.Notifications, deps.Services.Hub)

	RegisterAPIRoutes(r, metricsReg, handlers, deps)

	// Uploaded files are served straight off disk.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Services.Files.Dir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
