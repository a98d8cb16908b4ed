package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Selvaprakash-V/SIH2K25/config"
	"github.com/Selvaprakash-V/SIH2K25/handlers"
	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	db, err := config.ConnectWithRetry(cfg)
	if err != nil {
		logger.Fatalw("mongodb connection failed", "error", err)
	}

	st := store.New(db)
	caches := config.NewCaches()
	h := handlers.New(st, caches, logger, cfg)

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	r.Use(corsHandler.Handler)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api, h, cfg, logger)
	logger.Infow("routes registered")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infow("shutdown signal received")
	case err := <-serverErrors:
		logger.Errorw("server error", "error", err)
	}

	logger.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("server shutdown", "error", err)
	}
	if err := config.Disconnect(ctx, db); err != nil {
		logger.Errorw("mongodb disconnect", "error", err)
	}
	logger.Infow("shutdown complete")
}

func registerRoutes(api *mux.Router, h *handlers.Handler, cfg config.Config, logger *zap.SugaredLogger) {
	// Open endpoints
	api.HandleFunc("/health", h.Health).Methods("GET")
	api.HandleFunc("/health/detailed", h.DetailedHealth).Methods("GET")
	api.HandleFunc("/auth/signup", h.Signup).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", h.Login).Methods("POST", "OPTIONS")

	// Everything below requires a valid token.
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret, logger))

	// Village routes
	protected.HandleFunc("/villages", h.ListVillages).Methods("GET")
	protected.HandleFunc("/villages", h.CreateVillage).Methods("POST")
	protected.HandleFunc("/villages/{id}", h.GetVillage).Methods("GET")
	protected.HandleFunc("/villages/{id}/nearby", h.GetNearbyVillages).Methods("GET")
	protected.HandleFunc("/villages/{id}/development-index", h.GetDevelopmentIndex).Methods("GET")
	protected.HandleFunc("/amenities", h.UpsertAmenities).Methods("PUT")

	// Gap analysis routes
	protected.HandleFunc("/gaps", h.GetGaps).Methods("GET")
	protected.HandleFunc("/recommendations", h.GetRecommendations).Methods("GET")

	// Project workflow routes
	protected.HandleFunc("/projects", h.ListProjects).Methods("GET")
	protected.HandleFunc("/projects", h.CreateProject).Methods("POST")
	protected.HandleFunc("/projects/stats", h.GetProjectStats).Methods("GET")
	protected.HandleFunc("/projects/{id}", h.GetProject).Methods("GET")
	protected.HandleFunc("/projects/{id}", h.UpdateProject).Methods("PUT")

	// Dashboard routes
	protected.HandleFunc("/dashboard/state", h.StateDashboard).Methods("GET")
	protected.HandleFunc("/dashboard/district/{district}", h.DistrictDashboard).Methods("GET")

	// Report routes
	protected.HandleFunc("/reports", h.CreateReport).Methods("POST")
	protected.HandleFunc("/reports", h.ListReports).Methods("GET")
	protected.HandleFunc("/sync/reports", h.SyncReports).Methods("POST")

	// Data upload
	protected.HandleFunc("/upload/villages", h.UploadVillages).Methods("POST")
}
