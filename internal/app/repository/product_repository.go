package repository

import (
	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByExternalID(externalID string) (*model.Product, error)
	Update(product *model.Product) error
	UpdateImagePrompt(id uint, prompt string) error
	Delete(id uint) error
	CountByCategory(categoryID uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"external_id": product.ExternalID,
		"title":       product.Title,
		"category_id": product.CategoryID,
	})

	if err := r.db.Omit("Category").Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"external_id": product.ExternalID,
			"title":       product.Title,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id":  product.ID,
		"external_id": product.ExternalID,
	})
	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).Preload("Category")
}

// FindAll returns every product with its category, in insertion order.
// The catalog pipeline uses this order to break sort ties.
func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.baseQuery().Order("products.id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products", err)
		return nil, err
	}

	logger.Debug("Products found", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Debug("Product not found", map[string]interface{}{
				"product_id": id,
			})
		} else {
			logger.Error("Failed to find product by ID", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByExternalID(externalID string) (*model.Product, error) {
	var product model.Product
	err := r.baseQuery().Where("products.external_id = ?", externalID).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Debug("Product not found", map[string]interface{}{
				"external_id": externalID,
			})
		} else {
			logger.Error("Failed to find product by external ID", err, map[string]interface{}{
				"external_id": externalID,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Omit("Category").Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateImagePrompt(id uint, prompt string) error {
	result := r.db.Model(&model.Product{}).Where("id = ?", id).Update("image_prompt", prompt)
	if result.Error != nil {
		logger.Error("Failed to update product image prompt", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product from database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		logger.Error("Failed to count products by category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return 0, err
	}
	return count, nil
}
