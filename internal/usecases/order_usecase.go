package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/domain/repositories"
	"storefront.backend/pkg/logger"
	"storefront.backend/pkg/metrics"
	"storefront.backend/pkg/utils"
)

// OrderUsecase handles checkout and order history
type OrderUsecase struct {
	accountRepo repositories.AccountRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	uow         repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	accountRepo repositories.AccountRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		accountRepo: accountRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		uow:         uow,
	}
}

// OrderListResult is a page of orders with its metadata
type OrderListResult struct {
	Items []*entities.Order    `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// Checkout turns the cart into an order. Stock is decremented, the order is
// created and the cart is cleared in one transaction.
func (u *OrderUsecase) Checkout(ctx context.Context, accountID uuid.UUID, input *entities.CheckoutInput) (*entities.Order, error) {
	var order *entities.Order

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		account, err := u.accountRepo.GetByID(txCtx, accountID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Account not found")
			}
			return err
		}
		if len(account.Cart) == 0 {
			return domainerrors.Validation("cart", "Cart is empty")
		}

		address, err := shippingAddress(account, input)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(account.Cart))
		for _, item := range account.Cart {
			ids = append(ids, item.ProductID)
		}
		products, err := u.productRepo.GetByIDs(txCtx, ids)
		if err != nil {
			return err
		}

		now := time.Now()
		order = &entities.Order{
			ID:              utils.GenerateUUIDv7(),
			AccountID:       account.ID,
			Status:          entities.OrderStatusPlaced,
			Items:           make([]entities.OrderItem, 0, len(account.Cart)),
			Total:           decimal.Zero,
			ShippingAddress: address,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		for _, item := range account.Cart {
			product, ok := products[item.ProductID]
			if !ok || !product.IsActive {
				return domainerrors.Conflict("A product in the cart is no longer available")
			}
			if err := u.productRepo.DecrementStock(txCtx, product.ID, item.Quantity); err != nil {
				if errors.Is(err, domainerrors.ErrInsufficientStock) {
					return domainerrors.Conflict(fmt.Sprintf("Not enough stock for %s", product.Name))
				}
				return err
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Items = append(order.Items, entities.OrderItem{
				ProductID:  product.ID,
				RetailerID: product.RetailerID,
				Name:       product.Name,
				UnitPrice:  product.Price,
				Quantity:   item.Quantity,
				LineTotal:  lineTotal,
			})
			order.Total = order.Total.Add(lineTotal)
		}

		if err := u.orderRepo.Create(txCtx, order); err != nil {
			return err
		}

		account.ClearCart()
		return u.accountRepo.Save(txCtx, account)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderPlaced()
	logger.Info(ctx, "Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

func shippingAddress(account *entities.Account, input *entities.CheckoutInput) (entities.Address, error) {
	if input != nil && input.AddressID != nil {
		addr, ok := account.ActiveAddress(*input.AddressID)
		if !ok {
			return entities.Address{}, domainerrors.Validation("addressId", "Address not found")
		}
		return addr, nil
	}
	addr, ok := account.DefaultAddress()
	if !ok {
		return entities.Address{}, domainerrors.Validation("addressId", "A shipping address is required")
	}
	return addr, nil
}

// ListOrders lists the orders of an account newest first
func (u *OrderUsecase) ListOrders(ctx context.Context, accountID uuid.UUID, pagination utils.PaginationParams) (*OrderListResult, error) {
	orders, total, err := u.orderRepo.ListByAccount(ctx, accountID, pagination)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{
		Items: orders,
		Meta:  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	}, nil
}

// GetOrder gets an order of the account. Orders of other accounts are
// reported as missing.
func (u *OrderUsecase) GetOrder(ctx context.Context, accountID, id uuid.UUID) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Order not found")
		}
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, domainerrors.NotFound("Order not found")
	}
	return order, nil
}
