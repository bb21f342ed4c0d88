package service

import (
	"context"
	"errors"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/internal/cart"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartService resolves the cart of a session and applies mutations to it.
// Mutations never fail once the session's Store exists; only AddProduct
// can fail because it looks the product up first.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) cart.State
	AddProduct(ctx context.Context, sessionID, productID string) (cart.State, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) cart.State
	RemoveItem(ctx context.Context, sessionID, productID string) cart.State
	ClearCart(ctx context.Context, sessionID string) cart.State
	OpenCart(ctx context.Context, sessionID string) cart.State
	CloseCart(ctx context.Context, sessionID string) cart.State
	ToggleCart(ctx context.Context, sessionID string) cart.State
}

type cartService struct {
	registry    *cart.Registry
	productRepo repository.ProductRepository
}

func NewCartService(registry *cart.Registry, productRepo repository.ProductRepository) CartService {
	return &cartService{
		registry:    registry,
		productRepo: productRepo,
	}
}

func (s *cartService) store(ctx context.Context, sessionID string) *cart.Store {
	return s.registry.Store(ctx, sessionID)
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) cart.State {
	return s.store(ctx, sessionID).State()
}

// AddProduct snapshots the product's display data, price and stock into a
// line item. Later price or stock changes do not affect items already added.
func (s *cartService) AddProduct(ctx context.Context, sessionID, productID string) (cart.State, error) {
	product, err := s.productRepo.FindByExternalID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.State{}, ErrProductNotFound
		}
		return cart.State{}, err
	}

	state := s.store(ctx, sessionID).AddItem(ctx, LineItemFromProduct(*product))

	logger.Debug("Product added to cart", map[string]interface{}{
		"session_id":  sessionID,
		"product_id":  productID,
		"total_items": state.TotalItems,
	})
	return state, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) cart.State {
	return s.store(ctx, sessionID).UpdateQuantity(ctx, productID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) cart.State {
	return s.store(ctx, sessionID).RemoveItem(ctx, productID)
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) cart.State {
	return s.store(ctx, sessionID).Clear(ctx)
}

func (s *cartService) OpenCart(ctx context.Context, sessionID string) cart.State {
	return s.store(ctx, sessionID).Open(ctx)
}

func (s *cartService) CloseCart(ctx context.Context, sessionID string) cart.State {
	return s.store(ctx, sessionID).Close(ctx)
}

func (s *cartService) ToggleCart(ctx context.Context, sessionID string) cart.State {
	return s.store(ctx, sessionID).Toggle(ctx)
}

// LineItemFromProduct builds the cart snapshot of a product
func LineItemFromProduct(p model.Product) cart.LineItem {
	return cart.LineItem{
		ID:            p.ExternalID,
		Name:          p.Title,
		Category:      p.CategoryName(),
		Image:         p.ImageURL,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		InStock:       p.InStock(),
		StockQuantity: p.StockQuantity,
	}
}
