package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/domain/repositories"
)

// CartUsecase manages the cart and wishlist embedded in an account
type CartUsecase struct {
	accountRepo repositories.AccountRepository
	productRepo repositories.ProductRepository
}

// NewCartUsecase creates a new cart usecase
func NewCartUsecase(accountRepo repositories.AccountRepository, productRepo repositories.ProductRepository) *CartUsecase {
	return &CartUsecase{
		accountRepo: accountRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the priced cart of an account
func (u *CartUsecase) GetCart(ctx context.Context, accountID uuid.UUID) (*entities.CartView, error) {
	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, account)
}

// AddToCart adds quantity units of a product. The resulting line may not
// exceed the product stock.
func (u *CartUsecase) AddToCart(ctx context.Context, accountID uuid.UUID, input *entities.CartItemInput) (*entities.CartView, error) {
	if input.Quantity < 1 {
		return nil, domainerrors.Validation("quantity", "Quantity must be at least 1")
	}
	product, err := u.purchasableProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := checkStock(product, account.CartQuantity(product.ID)+input.Quantity); err != nil {
		return nil, err
	}
	account.AddToCart(product.ID, input.Quantity, time.Now())

	if err := u.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return u.view(ctx, account)
}

// UpdateCartItem sets the quantity of a cart line; zero removes it
func (u *CartUsecase) UpdateCartItem(ctx context.Context, accountID, productID uuid.UUID, quantity int) (*entities.CartView, error) {
	if quantity < 0 {
		return nil, domainerrors.Validation("quantity", "Quantity cannot be negative")
	}

	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CartQuantity(productID) == 0 {
		return nil, domainerrors.NotFound("Cart item not found")
	}

	if quantity > 0 {
		product, err := u.purchasableProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := checkStock(product, quantity); err != nil {
			return nil, err
		}
	}
	account.SetCartQuantity(productID, quantity)

	if err := u.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return u.view(ctx, account)
}

// RemoveCartItem drops a cart line
func (u *CartUsecase) RemoveCartItem(ctx context.Context, accountID, productID uuid.UUID) (*entities.CartView, error) {
	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.RemoveFromCart(productID) {
		return nil, domainerrors.NotFound("Cart item not found")
	}
	if err := u.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return u.view(ctx, account)
}

// ClearCart empties the cart
func (u *CartUsecase) ClearCart(ctx context.Context, accountID uuid.UUID) error {
	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if len(account.Cart) == 0 {
		return nil
	}
	account.ClearCart()
	return u.accountRepo.Save(ctx, account)
}

// GetWishlist returns the wishlist joined with product data. Products that
// no longer exist are skipped.
func (u *CartUsecase) GetWishlist(ctx context.Context, accountID uuid.UUID) ([]*entities.WishlistEntry, error) {
	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(account.Wishlist))
	for _, item := range account.Wishlist {
		ids = append(ids, item.ProductID)
	}
	products, err := u.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.WishlistEntry, 0, len(account.Wishlist))
	for _, item := range account.Wishlist {
		if p, ok := products[item.ProductID]; ok {
			out = append(out, &entities.WishlistEntry{Product: p, AddedAt: item.AddedAt})
		}
	}
	return out, nil
}

// AddToWishlist adds a product to the wishlist. Adding it twice is a no-op.
func (u *CartUsecase) AddToWishlist(ctx context.Context, accountID, productID uuid.UUID) ([]*entities.WishlistEntry, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, domainerrors.NotFound("Product not found")
	}

	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.AddToWishlist(productID, time.Now()) {
		if err := u.accountRepo.Save(ctx, account); err != nil {
			return nil, err
		}
	}
	return u.GetWishlist(ctx, accountID)
}

// RemoveFromWishlist drops a product from the wishlist
func (u *CartUsecase) RemoveFromWishlist(ctx context.Context, accountID, productID uuid.UUID) error {
	account, err := u.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.RemoveFromWishlist(productID) {
		return domainerrors.NotFound("Wishlist item not found")
	}
	return u.accountRepo.Save(ctx, account)
}

func (u *CartUsecase) loadAccount(ctx context.Context, accountID uuid.UUID) (*entities.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Account not found")
		}
		return nil, err
	}
	return account, nil
}

func (u *CartUsecase) purchasableProduct(ctx context.Context, productID uuid.UUID) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, domainerrors.Conflict("Product is not available")
	}
	return product, nil
}

func checkStock(product *entities.Product, quantity int) error {
	if quantity > product.Stock {
		return domainerrors.Conflict(fmt.Sprintf("Only %d units of %s are in stock", product.Stock, product.Name))
	}
	return nil
}

// view prices the cart against current product data. Unavailable lines are
// listed but excluded from the subtotal.
func (u *CartUsecase) view(ctx context.Context, account *entities.Account) (*entities.CartView, error) {
	ids := make([]uuid.UUID, 0, len(account.Cart))
	for _, item := range account.Cart {
		ids = append(ids, item.ProductID)
	}
	products, err := u.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cart := &entities.CartView{
		Items:    make([]entities.CartLine, 0, len(account.Cart)),
		Subtotal: decimal.Zero,
	}
	for _, item := range account.Cart {
		line := entities.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
			AddedAt:   item.AddedAt,
		}
		if p, ok := products[item.ProductID]; ok {
			line.Name = p.Name
			line.ImageURL = p.ImageURL
			line.UnitPrice = p.Price
			line.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			line.Available = p.IsActive && p.Stock >= item.Quantity
		}
		if line.Available {
			cart.Subtotal = cart.Subtotal.Add(line.LineTotal)
			cart.ItemCount += item.Quantity
		}
		cart.Items = append(cart.Items, line)
	}
	return cart, nil
}
