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

	"myShopCart/app/echo-server/metrics"
	"myShopCart/app/echo-server/router"
	"myShopCart/business/cart"
	"myShopCart/business/orders"
	"myShopCart/business/product"
	"myShopCart/business/recommendation"
	"myShopCart/internal/middleware"
	"myShopCart/internal/repository"
	psqlRepo "myShopCart/internal/repository/postgres"
	"myShopCart/internal/rest"
	"myShopCart/pkg/config"
	"myShopCart/pkg/database"
	"myShopCart/pkg/logger"
	recoMetrics "myShopCart/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting MyShopCart", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() { _ = database.ClosePostgres(db) }()

	logger.Info("Database connected successfully")

	if err := psqlRepo.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	matrixStore, closeStore, err := repository.NewMatrixStore(context.Background(), cfg, db)
	if err != nil {
		logger.Fatal("Failed to init matrix store", "error", err)
	}
	defer closeStore()

	metrics.Init()
	recoMetrics.Init()

	// Init repo
	productsRepo := psqlRepo.NewProductRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	// Init service
	engine := recommendation.NewEngine(matrixStore, recommendation.Uint64Keys(),
		recommendation.WithDefaultLimit(cfg.Reco.DefaultLimit))
	productService := product.NewProductService(productsRepo)
	cartService := cart.NewCartService(cartRepo, productsRepo, engine)
	ordersService := orders.NewOrdersService(ordersRepo)

	// Init handler
	productHandler := rest.NewProductHandler(productService)
	cartHandler := rest.NewCartHandler(cartService)
	ordersHandler := rest.NewOrdersHandler(ordersService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.TraceMiddleware())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler)
	router.SetupCartRoutes(api, cartHandler, cartService)
	router.SetOrdersRoutes(api, ordersHandler)
	router.SetupMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr, "matrix_store", cfg.Reco.Store)
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

	logger.Info("Server stopped")
}
