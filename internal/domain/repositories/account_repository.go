package repositories

import (
	"context"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
)

// AccountRepository defines account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.Account, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Account, error)
	// Save writes the whole account document back, embedded collections included
	Save(ctx context.Context, account *entities.Account) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role entities.AccountRole) (int64, error)
}
