package repositories

import (
	"context"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
)

// RetailerApplicationRepository defines retailer application data operations
type RetailerApplicationRepository interface {
	Create(ctx context.Context, app *entities.RetailerApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.RetailerApplication, error)
	GetLatestByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.RetailerApplication, error)
	ExistsByAccountAndStatus(ctx context.Context, accountID uuid.UUID, status entities.ApplicationStatus) (bool, error)
	// List returns applications newest first. A nil status lists all, a zero limit means no limit.
	List(ctx context.Context, status *entities.ApplicationStatus, limit int) ([]*entities.RetailerApplication, error)
	// UpdateDecision persists a decision only while the stored row is still pending.
	// It returns ErrConflict when another decision won.
	UpdateDecision(ctx context.Context, app *entities.RetailerApplication) error
	Count(ctx context.Context, status *entities.ApplicationStatus) (int64, error)
}
