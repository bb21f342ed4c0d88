package db

import (
	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&model.Category{},
		&model.Product{},
	}
}

// DefaultCategories are the storefront category chips created on first boot
var DefaultCategories = []model.Category{
	{Name: "Muebles", Slug: "muebles", Description: "Sofás, mesas, sillas y almacenaje"},
	{Name: "Iluminación", Slug: "iluminacion", Description: "Lámparas de mesa, de pie y colgantes"},
	{Name: "Textiles", Slug: "textiles", Description: "Cojines, mantas, alfombras y cortinas"},
	{Name: "Decoración", Slug: "decoracion", Description: "Jarrones, espejos, velas y cuadros"},
	{Name: "Cocina", Slug: "cocina", Description: "Vajilla, menaje y accesorios de cocina"},
}

// Migrate runs database migrations against DB
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs migrations and seeds the default categories
func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedCategories(db); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedCategories creates DefaultCategories when the table is empty
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := make([]model.Category, len(DefaultCategories))
	copy(categories, DefaultCategories)
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	logger.Info("Seeded default categories", map[string]interface{}{
		"count": len(categories),
	})
	return nil
}
