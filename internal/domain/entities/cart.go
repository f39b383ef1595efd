package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a line of the cart embedded in an account
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// WishlistItem is an entry of the wishlist embedded in an account
type WishlistItem struct {
	ProductID uuid.UUID `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartQuantity returns the quantity of a product already in the cart
func (a *Account) CartQuantity(productID uuid.UUID) int {
	for _, item := range a.Cart {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// AddToCart adds quantity to the line of productID, creating it if needed
func (a *Account) AddToCart(productID uuid.UUID, quantity int, at time.Time) {
	for i := range a.Cart {
		if a.Cart[i].ProductID == productID {
			a.Cart[i].Quantity += quantity
			return
		}
	}
	a.Cart = append(a.Cart, CartItem{ProductID: productID, Quantity: quantity, AddedAt: at})
}

// SetCartQuantity sets the quantity of an existing line; zero removes it
func (a *Account) SetCartQuantity(productID uuid.UUID, quantity int) bool {
	for i := range a.Cart {
		if a.Cart[i].ProductID == productID {
			if quantity <= 0 {
				a.Cart = append(a.Cart[:i], a.Cart[i+1:]...)
			} else {
				a.Cart[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// RemoveFromCart drops the line of productID
func (a *Account) RemoveFromCart(productID uuid.UUID) bool {
	return a.SetCartQuantity(productID, 0)
}

// ClearCart empties the cart
func (a *Account) ClearCart() {
	a.Cart = []CartItem{}
}

// AddToWishlist adds productID unless it is already listed
func (a *Account) AddToWishlist(productID uuid.UUID, at time.Time) bool {
	for _, item := range a.Wishlist {
		if item.ProductID == productID {
			return false
		}
	}
	a.Wishlist = append(a.Wishlist, WishlistItem{ProductID: productID, AddedAt: at})
	return true
}

// RemoveFromWishlist drops productID from the wishlist
func (a *Account) RemoveFromWishlist(productID uuid.UUID) bool {
	for i, item := range a.Wishlist {
		if item.ProductID == productID {
			a.Wishlist = append(a.Wishlist[:i], a.Wishlist[i+1:]...)
			return true
		}
	}
	return false
}

// CartItemInput represents input for adding a product to the cart
type CartItemInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=99"`
}

// CartQuantityInput represents input for changing a cart line
type CartQuantityInput struct {
	Quantity int `json:"quantity" binding:"min=0,max=99"`
}

// CartLine is a cart item joined with current product data
type CartLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Available bool            `json:"available"`
	AddedAt   time.Time       `json:"addedAt"`
}

// CartView is the priced cart returned to clients
type CartView struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// WishlistEntry is a wishlist item joined with its product
type WishlistEntry struct {
	Product *Product  `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}
