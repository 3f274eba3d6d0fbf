package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appmetrics "motoMatch/app/echo-server/metrics"
	"motoMatch/app/echo-server/router"
	"motoMatch/business/catalog"
	"motoMatch/business/recommendation"
	"motoMatch/business/rider"
	"motoMatch/internal/middleware"
	neo4jRepo "motoMatch/internal/repository/neo4j"
	psqlRepo "motoMatch/internal/repository/postgres"
	redisRepo "motoMatch/internal/repository/redis"
	"motoMatch/internal/rest"
	"motoMatch/pkg/config"
	"motoMatch/pkg/database"
	neo4jdb "motoMatch/pkg/database/neo4j"
	redisdb "motoMatch/pkg/database/redis"
	"motoMatch/pkg/logger"
	"motoMatch/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MotoMatch", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	neo4jDriver, err := neo4jdb.NewNeo4jDriver(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to neo4j", "error", err)
	}

	logger.Info("Neo4j connected successfully")

	// The catalog cache is optional: without redis every read goes to postgres.
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", "error", err)
		redisClient = nil
	}

	// Init metrics
	metrics.Init()
	appmetrics.Init()

	// Init repo
	motoRepo := psqlRepo.NewMotoRepository(db)
	prefRepo := neo4jRepo.NewPreferenceRepository(neo4jDriver, cfg.Neo4j.Database)

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	prefRepo.EnsureSchema(schemaCtx)
	cancelSchema()

	var catalogSource recommendation.CatalogRepository = motoRepo
	var cacheInvalidator catalog.CacheInvalidator
	if redisClient != nil {
		catalogCache := redisRepo.NewCatalogCache(redisClient, motoRepo, cfg.Redis.CatalogTTL)
		catalogSource = catalogCache
		cacheInvalidator = catalogCache
	}

	// Init service
	catalogService := catalog.NewCatalogService(motoRepo, cacheInvalidator)
	riderService := rider.NewRiderService(prefRepo)
	recommendationService := recommendation.NewRecommendationService(catalogSource, prefRepo, cfg.Recommendation.Timeout)

	// Init handler
	motoHandler := rest.NewMotoHandler(catalogService)
	riderHandler := rest.NewRiderHandler(riderService)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupMotoRoutes(api, motoHandler)
	router.SetupRiderRoutes(api, riderHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := neo4jdb.CloseNeo4jDriver(neo4jDriver); err != nil {
		logger.Error("Neo4j shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
