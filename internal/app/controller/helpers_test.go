package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casaviva/hogar-backend/config"
	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/internal/app/service"
	"github.com/casaviva/hogar-backend/internal/cart"
	"github.com/casaviva/hogar-backend/internal/db"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/casaviva/hogar-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testJWTSecret     = "controller-test-secret"
	testAdminEmail    = "admin@casaviva.local"
	testAdminPassword = "s3cret-admin"
)

type mockAIService struct {
	mock.Mock
}

func (m *mockAIService) AnalyzeProductImage(ctx context.Context, imageURL string, categories []string) (*service.ImageAnalysis, error) {
	args := m.Called(ctx, imageURL, categories)
	analysis, _ := args.Get(0).(*service.ImageAnalysis)
	return analysis, args.Error(1)
}

func (m *mockAIService) SuggestDescription(ctx context.Context, req service.DescriptionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAIService) GenerateImagePrompt(ctx context.Context, req service.ImagePromptRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAIService) RecommendProducts(ctx context.Context, product model.Product, candidates []model.Product, limit int) ([]string, error) {
	args := m.Called(ctx, product, candidates, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// testApp wires real services over an in-memory database and in-memory cart
// storage, with the same middleware chain as the server.
type testApp struct {
	router     *gin.Engine
	db         *gorm.DB
	categories map[string]*model.Category
	products   repository.ProductRepository
	created    int
	ai         *mockAIService
	auth       service.AuthService
}

func setupTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	previousCost := util.BcryptCost
	util.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { util.BcryptCost = previousCost })

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	cache := service.NewCatalogCache(productRepo)
	ai := &mockAIService{}

	registry, err := cart.NewRegistry(32, cart.NewMemoryStorage())
	require.NoError(t, err)

	authService, err := service.NewAuthService(testAdminEmail, testAdminPassword, testJWTSecret, 15*time.Minute, time.Hour, service.NewMemoryTokenBlacklist())
	require.NoError(t, err)

	productService := service.NewProductService(productRepo, categoryRepo, cache, ai, nil)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, cache)
	cartService := service.NewCartService(registry, productRepo)

	productController := NewProductController(productService, service.NewExportService(cache))
	categoryController := NewCategoryController(categoryService)
	cartController := NewCartController(cartService)
	authController := NewAuthController(authService)
	aiController := NewAIController(ai, productService, categoryService)
	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret, authService)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())

	v1 := router.Group("/api/v1")
	v1.GET("/products", productController.ListProducts)
	v1.GET("/products/:id", productController.GetProduct)
	v1.GET("/categories", categoryController.ListCategories)

	cartGroup := v1.Group("/cart", middleware.SessionMiddleware(config.CartConfig{
		CookieName:   "cart_session",
		CookieMaxAge: time.Hour,
	}))
	cartGroup.GET("", cartController.GetCart)
	cartGroup.DELETE("", cartController.ClearCart)
	cartGroup.POST("/items", cartController.AddItem)
	cartGroup.PUT("/items/:id", cartController.UpdateItem)
	cartGroup.DELETE("/items/:id", cartController.RemoveItem)
	cartGroup.POST("/open", cartController.OpenCart)
	cartGroup.POST("/close", cartController.CloseCart)
	cartGroup.POST("/toggle", cartController.ToggleCart)

	v1.POST("/admin/login", authController.Login)
	v1.POST("/admin/refresh", authController.Refresh)
	admin := v1.Group("/admin", authMiddleware.Authenticate(), authMiddleware.RequireRole(service.RoleAdmin))
	admin.POST("/logout", authController.Logout)
	admin.GET("/me", authController.Me)
	admin.GET("/products/export", productController.ExportProducts)
	admin.POST("/products", productController.CreateProduct)
	admin.PUT("/products/:id", productController.UpdateProduct)
	admin.DELETE("/products/:id", productController.DeleteProduct)
	admin.POST("/categories", categoryController.CreateCategory)
	admin.PUT("/categories/:id", categoryController.UpdateCategory)
	admin.DELETE("/categories/:id", categoryController.DeleteCategory)
	admin.POST("/ai/analyze-image", aiController.AnalyzeImage)
	admin.POST("/ai/suggest-description", aiController.SuggestDescription)
	admin.POST("/ai/image-prompt", aiController.GenerateImagePrompt)

	app := &testApp{
		router:     router,
		db:         testDB,
		categories: map[string]*model.Category{},
		products:   productRepo,
		ai:         ai,
		auth:       authService,
	}
	for _, name := range []string{"Iluminación", "Textiles", "Muebles"} {
		category := &model.Category{Name: name, Slug: service.Slugify(name)}
		require.NoError(t, categoryRepo.Create(category))
		app.categories[name] = category
	}
	return app
}

func (a *testApp) addProduct(t *testing.T, externalID, title, category string, price float64, stock int) *model.Product {
	a.created++
	product := &model.Product{
		ExternalID:    externalID,
		Title:         title,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    a.categories[category].ID,
		CreatedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(a.created) * time.Hour),
	}
	require.NoError(t, a.products.Create(product))
	return product
}

func (a *testApp) adminToken(t *testing.T) string {
	tokens, err := a.auth.Login(testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	return tokens.AccessToken
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookies(cookies []*http.Cookie) requestOption {
	return func(r *http.Request) {
		for _, cookie := range cookies {
			r.AddCookie(cookie)
		}
	}
}

func (a *testApp) do(method, path string, body interface{}, opts ...requestOption) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
