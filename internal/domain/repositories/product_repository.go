package repositories

import (
	"context"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/pkg/utils"
)

// ProductRepository defines product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Product, error)
	List(ctx context.Context, filter entities.ProductFilter, pagination utils.PaginationParams) ([]*entities.Product, int64, error)
	Update(ctx context.Context, product *entities.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// DecrementStock lowers stock by quantity and returns ErrInsufficientStock
	// when fewer units are left.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
