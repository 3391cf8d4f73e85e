package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/config"
	"github.com/RealEstate/RealEstate-Backend/src/db"
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/routes"
	"github.com/RealEstate/RealEstate-Backend/src/seed"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	zl, err := logger.InitLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Error initializing logger: %v\n", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("Error connecting to database", zap.Error(err))
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		zl.Fatal("Error during migration", zap.Error(err))
	}

	// Services setup
	ownerService := services.NewOwnerService(database)
	propertyService := services.NewPropertyService(database)
	tokenService := services.NewTokenService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.TokenTTL())
	authService, err := services.NewAuthService(cfg.Auth.Users)
	if err != nil {
		zl.Fatal("Invalid credential records", zap.Error(err))
	}
	if len(cfg.Auth.Users) == 0 {
		zl.Warn("No auth.users configured; protected endpoints are unreachable")
	}

	if cfg.Seed.Enabled {
		if err := seed.Seed(ctx, database, ownerService, propertyService); err != nil {
			zl.Fatal("Error seeding demo data", zap.Error(err))
		}
	}

	deps := routes.Dependencies{
		DB:         database,
		Owners:     ownerService,
		Properties: propertyService,
		Auth:       authService,
		Tokens:     tokenService,
	}
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewMetrics(registry)
		deps.Gatherer = registry
	}

	// Gin router setup
	gin.SetMode(cfg.Server.Mode)
	router, err := routes.NewRouter(cfg.Server, deps)
	if err != nil {
		zl.Fatal("Error building router", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.Server.Host,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server is running", zap.String("addr", cfg.Server.Host))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Error starting server", zap.String("addr", cfg.Server.Host), zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
}
