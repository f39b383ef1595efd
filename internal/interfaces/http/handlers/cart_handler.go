package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/interfaces/http/response"
)

type cartService interface {
	GetCart(ctx context.Context, accountID uuid.UUID) (*entities.CartView, error)
	AddToCart(ctx context.Context, accountID uuid.UUID, input *entities.CartItemInput) (*entities.CartView, error)
	UpdateCartItem(ctx context.Context, accountID, productID uuid.UUID, quantity int) (*entities.CartView, error)
	RemoveCartItem(ctx context.Context, accountID, productID uuid.UUID) (*entities.CartView, error)
	ClearCart(ctx context.Context, accountID uuid.UUID) error
	GetWishlist(ctx context.Context, accountID uuid.UUID) ([]*entities.WishlistEntry, error)
	AddToWishlist(ctx context.Context, accountID, productID uuid.UUID) ([]*entities.WishlistEntry, error)
	RemoveFromWishlist(ctx context.Context, accountID, productID uuid.UUID) error
}

// CartHandler handles cart and wishlist endpoints
type CartHandler struct {
	cartUsecase cartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartUsecase cartService) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase}
}

// GetCart returns the priced cart
// GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	cart, err := h.cartUsecase.GetCart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddItem adds a product to the cart
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.CartItemInput
	if !bindJSON(c, &input) {
		return
	}

	cart, err := h.cartUsecase.AddToCart(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// UpdateItem sets the quantity of a cart line
// PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId", "product")
	if !ok {
		return
	}

	var input entities.CartQuantityInput
	if !bindJSON(c, &input) {
		return
	}

	cart, err := h.cartUsecase.UpdateCartItem(c.Request.Context(), id, productID, input.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// RemoveItem removes a cart line
// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId", "product")
	if !ok {
		return
	}

	cart, err := h.cartUsecase.RemoveCartItem(c.Request.Context(), id, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	if err := h.cartUsecase.ClearCart(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Cart cleared"})
}

// GetWishlist returns the wishlist
// GET /api/v1/wishlist
func (h *CartHandler) GetWishlist(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	items, err := h.cartUsecase.GetWishlist(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// AddToWishlist adds a product to the wishlist
// POST /api/v1/wishlist/:productId
func (h *CartHandler) AddToWishlist(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId", "product")
	if !ok {
		return
	}

	items, err := h.cartUsecase.AddToWishlist(c.Request.Context(), id, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// RemoveFromWishlist removes a product from the wishlist
// DELETE /api/v1/wishlist/:productId
func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId", "product")
	if !ok {
		return
	}

	if err := h.cartUsecase.RemoveFromWishlist(c.Request.Context(), id, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
