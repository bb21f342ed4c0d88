package service

import (
	"context"
	"errors"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/internal/catalog"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const (
	RecommendationLimit = 4
	// upper bound on products listed in a recommendation prompt
	recommendationCandidates = 40
)

// ImageDeleter removes an uploaded product image by its public id
type ImageDeleter interface {
	DeleteImage(ctx context.Context, publicID string) error
}

// ProductInput is the admin create/update payload
type ProductInput struct {
	Title         string   `json:"title" binding:"required,min=2,max=200"`
	Description   string   `json:"description" binding:"max=5000"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,gt=0"`
	Rating        float64  `json:"rating" binding:"gte=0,lte=5"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	ImageURL      string   `json:"image_url" binding:"omitempty,url"`
	ImagePublicID string   `json:"image_public_id"`
	CategoryID    uint     `json:"category_id" binding:"required"`
}

type ProductDetail struct {
	Product         *model.Product  `json:"product"`
	Recommendations []model.Product `json:"recommendations"`
}

type ProductService interface {
	ListCatalog(ctx context.Context, spec catalog.Spec) (catalog.Result, error)
	GetProduct(ctx context.Context, externalID string) (*ProductDetail, error)
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, externalID string, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, externalID string) error
	SaveImagePrompt(ctx context.Context, externalID, prompt string) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *CatalogCache
	ai           AIService
	images       ImageDeleter
}

// NewProductService wires the catalog. ai and images may be nil.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache *CatalogCache,
	ai AIService,
	images ImageDeleter,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		ai:           ai,
		images:       images,
	}
}

func (s *productService) ListCatalog(ctx context.Context, spec catalog.Spec) (catalog.Result, error) {
	products, err := s.cache.Products()
	if err != nil {
		return catalog.Result{}, err
	}

	result := catalog.Run(products, spec)

	logger.Debug("Catalog page built", map[string]interface{}{
		"search":      spec.SearchTerm,
		"category":    spec.Category,
		"sort":        spec.Sort,
		"page":        result.Page,
		"total_count": result.TotalCount,
	})
	return result, nil
}

func (s *productService) GetProduct(ctx context.Context, externalID string) (*ProductDetail, error) {
	product, err := s.findProduct(externalID)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:         product,
		Recommendations: s.recommend(ctx, *product),
	}, nil
}

// recommend never fails: any AI or cache error yields an empty list.
func (s *productService) recommend(ctx context.Context, product model.Product) []model.Product {
	recommendations := []model.Product{}
	if s.ai == nil {
		return recommendations
	}

	products, err := s.cache.Products()
	if err != nil {
		return recommendations
	}

	byID := make(map[string]model.Product, len(products))
	candidates := make([]model.Product, 0, recommendationCandidates)
	for _, p := range products {
		if p.ExternalID == product.ExternalID || !p.InStock() {
			continue
		}
		if len(candidates) < recommendationCandidates {
			candidates = append(candidates, p)
			byID[p.ExternalID] = p
		}
	}

	ids, err := s.ai.RecommendProducts(ctx, product, candidates, RecommendationLimit)
	if err != nil {
		logger.Warn("Recommendations unavailable", map[string]interface{}{
			"product_id": product.ExternalID,
			"error":      err.Error(),
		})
		return recommendations
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		recommendations = append(recommendations, p)
		if len(recommendations) == RecommendationLimit {
			break
		}
	}
	return recommendations
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	category, err := s.findCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	product := &model.Product{ExternalID: uuid.NewString()}
	applyProductInput(product, input)

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	product.Category = *category
	s.cache.Invalidate()

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ExternalID,
		"title":      product.Title,
		"category":   category.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, externalID string, input ProductInput) (*model.Product, error) {
	product, err := s.findProduct(externalID)
	if err != nil {
		return nil, err
	}
	category, err := s.findCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	previousImage := product.ImagePublicID
	applyProductInput(product, input)
	product.Category = *category

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	if previousImage != "" && previousImage != product.ImagePublicID {
		s.deleteImage(ctx, previousImage)
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ExternalID,
	})
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, externalID string) error {
	product, err := s.findProduct(externalID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(product.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.cache.Invalidate()

	if product.ImagePublicID != "" {
		s.deleteImage(ctx, product.ImagePublicID)
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": externalID,
	})
	return nil
}

func (s *productService) SaveImagePrompt(ctx context.Context, externalID, prompt string) error {
	product, err := s.findProduct(externalID)
	if err != nil {
		return err
	}
	if err := s.productRepo.UpdateImagePrompt(product.ID, prompt); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

func (s *productService) findProduct(externalID string) (*model.Product, error) {
	product, err := s.productRepo.FindByExternalID(externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) findCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// deleteImage is best-effort.
func (s *productService) deleteImage(ctx context.Context, publicID string) {
	if s.images == nil {
		return
	}
	if err := s.images.DeleteImage(ctx, publicID); err != nil {
		logger.Warn("Failed to delete product image", map[string]interface{}{
			"public_id": publicID,
			"error":     err.Error(),
		})
	}
}

func applyProductInput(product *model.Product, input ProductInput) {
	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.Rating = input.Rating
	product.StockQuantity = input.StockQuantity
	product.ImageURL = input.ImageURL
	product.ImagePublicID = input.ImagePublicID
	product.CategoryID = input.CategoryID
}
