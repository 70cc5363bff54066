package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/commit-risk/docs"
	"github.com/KOFI-GYIMAH/commit-risk/internal/config"
	"github.com/KOFI-GYIMAH/commit-risk/internal/db"
	"github.com/KOFI-GYIMAH/commit-risk/internal/github"
	"github.com/KOFI-GYIMAH/commit-risk/internal/handler"
	md "github.com/KOFI-GYIMAH/commit-risk/internal/middleware"
	"github.com/KOFI-GYIMAH/commit-risk/internal/queue"
	"github.com/KOFI-GYIMAH/commit-risk/internal/scoring"
	"github.com/KOFI-GYIMAH/commit-risk/internal/service"
	"github.com/KOFI-GYIMAH/commit-risk/internal/worker"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 15 * time.Second

// @title Commit Risk Service
// @version 1.0.0
// @description Scores commits for deployment risk and serves dashboard aggregates.
// @host localhost:8081
// @BasePath /api/v1
func main() {
	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Level())

	// * Initialize PostgreSQL database
	database, err := db.NewPostgresDB(cfg.DBURL)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	// * Run migrations
	if err := database.Migrate(cfg.MigrationsPath); err != nil {
		logger.Error("Failed to run migrations: %v", err)
		os.Exit(1)
	}
	logger.Info("Successfully ran migrations")

	registry, err := scoring.NewDefaultRegistry(cfg.DefaultModelVersion)
	if err != nil {
		logger.Error("Invalid model configuration: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * GitHub sync is optional; without a token the source stays nil
	var source service.CommitSource
	if cfg.GitHubToken != "" {
		source = github.NewClient(cfg.GitHubToken, github.Options{})
	}

	analysisService := service.NewAnalysisService(database, registry)
	dashboardService := service.NewDashboardService(database)

	// * Analysis jobs go through RabbitMQ when configured, inline otherwise
	var publisher service.JobPublisher
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("Failed to initialize RabbitMQ: %v", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()

		if err := rabbitMQ.ConsumeAnalysisJobs(ctx, analysisService, 10); err != nil {
			logger.Error("Failed to start analysis consumer: %v", err)
			os.Exit(1)
		}
		publisher = rabbitMQ
	}

	repoService := service.NewRepositoryService(database, source, analysisService, publisher, cfg.CommitsPerPage)

	// * Create and start worker
	if source != nil {
		syncWorker := worker.NewSyncWorker(repoService, cfg.SyncInterval, cfg.SyncConcurrency, cfg.CommitFetchLimit)
		go syncWorker.Run(ctx)
	}

	// * Create API server
	router := mux.NewRouter()
	router.Use(md.RequestIDMiddleware, md.LoggingMiddleware, md.MetricsMiddleware)

	router.Handle("/health", handler.Health(database)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/api/v1/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(md.IdentityMiddleware)

	apiHandler := handler.NewHandler(analysisService, dashboardService, repoService, cfg.CommitFetchLimit)
	apiHandler.RegisterRoutes(api)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
