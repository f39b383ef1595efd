package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/infrastructure/models"
)

// RetailerApplicationRepository implements retailer application data operations
type RetailerApplicationRepository struct {
	db *gorm.DB
}

// NewRetailerApplicationRepository creates a new retailer application repository
func NewRetailerApplicationRepository(db *gorm.DB) *RetailerApplicationRepository {
	return &RetailerApplicationRepository{db: db}
}

// Create inserts a new application. A second pending application for the
// same account violates the partial unique index and yields ErrAlreadyExists.
func (r *RetailerApplicationRepository) Create(ctx context.Context, app *entities.RetailerApplication) error {
	if err := GetDB(ctx, r.db).Create(r.toModel(app)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("create retailer application: %w", err)
	}
	return nil
}

// GetByID gets an application by ID
func (r *RetailerApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.RetailerApplication, error) {
	var m models.RetailerApplication
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetLatestByAccountID gets the most recent application of an account
func (r *RetailerApplicationRepository) GetLatestByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.RetailerApplication, error) {
	var m models.RetailerApplication
	err := GetDB(ctx, r.db).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ExistsByAccountAndStatus reports whether the account has an application in status
func (r *RetailerApplicationRepository) ExistsByAccountAndStatus(ctx context.Context, accountID uuid.UUID, status entities.ApplicationStatus) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).
		Model(&models.RetailerApplication{}).
		Where("account_id = ? AND status = ?", accountID, string(status)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List lists applications newest first
func (r *RetailerApplicationRepository) List(ctx context.Context, status *entities.ApplicationStatus, limit int) ([]*entities.RetailerApplication, error) {
	var ms []models.RetailerApplication
	query := GetDB(ctx, r.db).Order("created_at DESC, id DESC")

	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	apps := make([]*entities.RetailerApplication, 0, len(ms))
	for i := range ms {
		apps = append(apps, r.toEntity(&ms[i]))
	}
	return apps, nil
}

// UpdateDecision writes the decision fields with a conditional update on the
// pending status
func (r *RetailerApplicationRepository) UpdateDecision(ctx context.Context, app *entities.RetailerApplication) error {
	updates := map[string]interface{}{
		"status":           string(app.Status),
		"reviewed_by":      app.ReviewedBy.UUID,
		"reviewed_at":      app.ReviewedAt.Time,
		"rejection_reason": app.RejectionReason,
		"updated_at":       app.UpdatedAt,
	}

	result := GetDB(ctx, r.db).
		Model(&models.RetailerApplication{}).
		Where("id = ? AND status = ?", app.ID, string(entities.ApplicationStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update retailer application decision: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

// Count counts applications, optionally in one status
func (r *RetailerApplicationRepository) Count(ctx context.Context, status *entities.ApplicationStatus) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&models.RetailerApplication{})
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RetailerApplicationRepository) toModel(a *entities.RetailerApplication) *models.RetailerApplication {
	m := &models.RetailerApplication{
		ID:                  a.ID,
		AccountID:           a.AccountID,
		Status:              string(a.Status),
		BusinessName:        a.BusinessName,
		BusinessDescription: a.BusinessDescription,
		BusinessCategory:    string(a.BusinessCategory),
		ReviewedAt:          a.ReviewedAt.Ptr(),
		RejectionReason:     a.RejectionReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
	if a.ReviewedBy.Valid {
		by := a.ReviewedBy.UUID
		m.ReviewedBy = &by
	}
	return m
}

func (r *RetailerApplicationRepository) toEntity(m *models.RetailerApplication) *entities.RetailerApplication {
	a := &entities.RetailerApplication{
		ID:                  m.ID,
		AccountID:           m.AccountID,
		Status:              entities.ApplicationStatus(m.Status),
		BusinessName:        m.BusinessName,
		BusinessDescription: m.BusinessDescription,
		BusinessCategory:    entities.BusinessCategory(m.BusinessCategory),
		ReviewedAt:          null.TimeFromPtr(m.ReviewedAt),
		RejectionReason:     m.RejectionReason,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.ReviewedBy != nil {
		a.ReviewedBy = uuid.NullUUID{UUID: *m.ReviewedBy, Valid: true}
	}
	return a
}
