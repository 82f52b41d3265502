package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/cashflow-service/internal/cache"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/handler"
	"github.com/Dan9191/cashflow-service/internal/middleware"
	"github.com/Dan9191/cashflow-service/internal/notify"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/Dan9191/cashflow-service/internal/scheduler"
	"github.com/Dan9191/cashflow-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize store
	store, closeStore, err := repository.Open(cfg)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()
	if cfg.UseMemoryStore {
		logger.Info("Using in-memory store")
	}

	// Initialize layers
	var opts []service.Option
	if cfg.CacheTTL > 0 {
		opts = append(opts, service.WithCache(cache.NewForecastCache(cfg.CacheTTL, time.Now)))
		logger.Infof("Forecast cache enabled, ttl %s", cfg.CacheTTL)
	}
	svc := service.NewService(store, logger, cfg, opts...)
	h := handler.NewHandler(svc, logger)

	monitor := scheduler.NewRiskMonitor(store, svc, notify.NewSender(cfg, logger), logger,
		cfg.AlertHorizonMonths, cfg.DefaultLocale)
	if cfg.AlertSchedule != "" {
		if err := monitor.Start(cfg.AlertSchedule); err != nil {
			logger.Fatalf("Failed to start risk monitor: %v", err)
		}
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.LocaleMiddleware(cfg.DefaultLocale))
	h.Register(r, middleware.AuthMiddleware(cfg))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Accept-Language", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Language"},
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.QueryTimeout + 5*time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	monitor.Stop(ctx)
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
