package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/infrastructure/models"
	"storefront.backend/pkg/utils"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := &models.Order{
		ID:              order.ID,
		AccountID:       order.AccountID,
		Status:          string(order.Status),
		Items:           order.Items,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID gets an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByAccount lists the orders of an account newest first
func (r *OrderRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Order, int64, error) {
	var ms []models.Order
	var totalCount int64

	query := GetDB(ctx, r.db).Model(&models.Order{}).Where("account_id = ?", accountID)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*entities.Order, 0, len(ms))
	for i := range ms {
		orders = append(orders, r.toEntity(&ms[i]))
	}
	return orders, totalCount, nil
}

func (r *OrderRepository) toEntity(m *models.Order) *entities.Order {
	o := &entities.Order{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Status:          entities.OrderStatus(m.Status),
		Items:           m.Items,
		Total:           m.Total,
		ShippingAddress: m.ShippingAddress,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if o.Items == nil {
		o.Items = []entities.OrderItem{}
	}
	return o
}
