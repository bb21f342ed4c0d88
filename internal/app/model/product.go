package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"-"`
	ExternalID    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	OriginalPrice *float64       `json:"original_price,omitempty"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string         `json:"image_url"`
	ImagePublicID string         `json:"-"` // Cloudinary public id, set for direct uploads
	ImagePrompt   string         `gorm:"type:text" json:"image_prompt,omitempty"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}

func (Product) TableName() string {
	return "products"
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// CategoryName returns the name of the preloaded category.
func (p Product) CategoryName() string {
	return p.Category.Name
}
