package router

import (
	"net/http"
	"time"

	"github.com/casaviva/hogar-backend/config"
	"github.com/casaviva/hogar-backend/internal/app/controller"
	"github.com/casaviva/hogar-backend/internal/app/service"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	categoryController *controller.CategoryController
	cartController     *controller.CartController
	uploadController   *controller.UploadController
	aiController       *controller.AIController
	healthController   *controller.HealthController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	cartController *controller.CartController,
	uploadController *controller.UploadController,
	aiController *controller.AIController,
	healthController *controller.HealthController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		categoryController: categoryController,
		cartController:     cartController,
		uploadController:   uploadController,
		aiController:       aiController,
		healthController:   healthController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(corsConfig(r.config.CORS.AllowedOrigins)))

	router.GET("/health", r.healthController.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", r.productController.ListProducts)
		v1.GET("/products/:id", r.productController.GetProduct)
		v1.GET("/categories", r.categoryController.ListCategories)

		cart := v1.Group("/cart", middleware.SessionMiddleware(r.config.Cart))
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:id", r.cartController.UpdateItem)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
			cart.POST("/open", r.cartController.OpenCart)
			cart.POST("/close", r.cartController.CloseCart)
			cart.POST("/toggle", r.cartController.ToggleCart)
		}

		v1.POST("/admin/login", r.authController.Login)
		v1.POST("/admin/refresh", r.authController.Refresh)

		admin := v1.Group("/admin",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(service.RoleAdmin),
		)
		{
			admin.POST("/logout", r.authController.Logout)
			admin.GET("/me", r.authController.Me)

			admin.GET("/products/export", r.productController.ExportProducts)
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.PUT("/categories/:id", r.categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)

			admin.POST("/uploads/presigned-url", r.uploadController.GeneratePresignedURL)
			admin.POST("/uploads/image", r.uploadController.UploadImage)

			admin.POST("/ai/analyze-image", r.aiController.AnalyzeImage)
			admin.POST("/ai/suggest-description", r.aiController.SuggestDescription)
			admin.POST("/ai/image-prompt", r.aiController.GenerateImagePrompt)
		}
	}

	return router
}

// corsConfig allows credentials (the cart cookie) for the listed origins. A
// "*" entry allows every origin without credentials.
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}
