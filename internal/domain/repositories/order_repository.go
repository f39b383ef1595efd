package repositories

import (
	"context"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/pkg/utils"
)

// OrderRepository defines order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Order, int64, error)
}
