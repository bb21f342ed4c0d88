package controller

import (
	"errors"
	"net/http"

	"github.com/casaviva/hogar-backend/internal/app/service"
	"github.com/casaviva/hogar-backend/internal/cart"
	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Quantity is a pointer so an explicit 0 passes "required"
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID, ok := requireCartSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": ctrl.cartService.GetCart(c.Request.Context(), sessionID)})
}

// AddItem adds one unit of a product. Adding past the stock keeps the
// quantity at the stock.
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, ok := requireCartSession(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	state, err := ctrl.cartService.AddProduct(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "No se encontró el producto")
			return
		}
		log.Error("Failed to add product to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": state})
}

// UpdateItem sets an item's quantity; 0 or less removes it
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	sessionID, ok := requireCartSession(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	state := ctrl.cartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, gin.H{"cart": state})
}

// RemoveItem
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	ctrl.apply(c, func(s service.CartService, sessionID string) cart.State {
		return s.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
	})
}

// ClearCart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ctrl.apply(c, func(s service.CartService, sessionID string) cart.State {
		return s.ClearCart(c.Request.Context(), sessionID)
	})
}

// POST /api/v1/cart/open
func (ctrl *CartController) OpenCart(c *gin.Context) {
	ctrl.apply(c, func(s service.CartService, sessionID string) cart.State {
		return s.OpenCart(c.Request.Context(), sessionID)
	})
}

// POST /api/v1/cart/close
func (ctrl *CartController) CloseCart(c *gin.Context) {
	ctrl.apply(c, func(s service.CartService, sessionID string) cart.State {
		return s.CloseCart(c.Request.Context(), sessionID)
	})
}

// POST /api/v1/cart/toggle
func (ctrl *CartController) ToggleCart(c *gin.Context) {
	ctrl.apply(c, func(s service.CartService, sessionID string) cart.State {
		return s.ToggleCart(c.Request.Context(), sessionID)
	})
}

func (ctrl *CartController) apply(c *gin.Context, mutate func(service.CartService, string) cart.State) {
	sessionID, ok := requireCartSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": mutate(ctrl.cartService, sessionID)})
}

func requireCartSession(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetCartSession(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Error("Cart route without session middleware", nil, map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		apperrors.BadRequest(c, apperrors.CartSessionMissing, "No se encontró la sesión del carrito")
		return "", false
	}
	return sessionID, true
}
