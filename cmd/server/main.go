package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/casaviva/hogar-backend/config"
	"github.com/casaviva/hogar-backend/internal/app/controller"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/internal/app/service"
	"github.com/casaviva/hogar-backend/internal/cart"
	"github.com/casaviva/hogar-backend/internal/db"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/casaviva/hogar-backend/internal/router"
	"github.com/casaviva/hogar-backend/internal/scheduler"
	"github.com/casaviva/hogar-backend/internal/storage"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"github.com/casaviva/hogar-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
		Service:     "casaviva-api",
	})

	logger.Info("Starting Casa Viva backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.SeedCategories(db.GetDB()); err != nil {
		logger.Warn("Failed to seed default categories", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Carts and the token blacklist fall back to memory without Redis.
	var (
		cartStorage    cart.Storage
		tokenBlacklist service.TokenBlacklist
		redisPinger    controller.Pinger
	)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, carts and revoked tokens are kept in memory", map[string]interface{}{
			"error": err.Error(),
		})
		cartStorage = cart.NewMemoryStorage()
		tokenBlacklist = service.NewMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		cartStorage = redis.NewCartStorage(redis.GetClient(), cfg.Cart.CookieMaxAge)
		tokenBlacklist = redis.NewTokenBlacklist(redis.GetClient())
		redisPinger = redis.NewPinger(redis.GetClient())
	}

	registry, err := cart.NewRegistry(cfg.Cart.RegistrySize, cartStorage)
	if err != nil {
		logger.Fatal("Failed to create cart registry", err)
	}

	var (
		imageDeleter service.ImageDeleter
		uploader     controller.ImageUploader
	)
	if cloudinaryStorage, err := storage.NewCloudinaryStorage(cfg.Cloudinary.URL, cfg.Cloudinary.Folder); err != nil {
		logger.Warn("Cloudinary uploads disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		imageDeleter = cloudinaryStorage
		uploader = cloudinaryStorage
	}

	var presigner controller.ImagePresigner
	if cfg.S3.Bucket != "" {
		presigner = storage.NewS3Storage(context.Background(), cfg.S3)
	}

	// without an API key every AI call fails fast with ErrAIUnavailable
	aiService := service.NewAIService(cfg.OpenAI)
	var recommender service.AIService
	if cfg.OpenAI.APIKey != "" {
		recommender = aiService
	} else {
		logger.Warn("OPENAI_API_KEY not set, AI features and recommendations are disabled")
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	catalogCache := service.NewCatalogCache(productRepo)
	if err := catalogCache.Refresh(); err != nil {
		logger.Warn("Initial catalog load failed, retrying on first request", map[string]interface{}{
			"error": err.Error(),
		})
	}

	authService, err := service.NewAuthService(
		cfg.Admin.Email,
		cfg.Admin.Password,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenBlacklist,
	)
	if err != nil {
		logger.Fatal("Failed to initialize admin auth", err)
	}
	productService := service.NewProductService(productRepo, categoryRepo, catalogCache, recommender, imageDeleter)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, catalogCache)
	cartService := service.NewCartService(registry, productRepo)
	exportService := service.NewExportService(catalogCache)

	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService, exportService)
	categoryController := controller.NewCategoryController(categoryService)
	cartController := controller.NewCartController(cartService)
	uploadController := controller.NewUploadController(presigner, uploader)
	aiController := controller.NewAIController(aiService, productService, categoryService)
	healthController := controller.NewHealthController(db.GetDB(), redisPinger)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, authService)

	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		cartController,
		uploadController,
		aiController,
		healthController,
		authMiddleware,
		cfg,
	)

	catalogScheduler := scheduler.NewCatalogScheduler(cfg.Catalog.RefreshCron, catalogCache)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	go func() {
		logger.Info("Server started", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	catalogScheduler.Stop(ctx)
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", err)
	}

	logger.Info("Server stopped")
}
