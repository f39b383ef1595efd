package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/infrastructure/models"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	account.NormalizeDefaultAddress()
	if err := GetDB(ctx, r.db).Create(r.toModel(account)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByExternalID gets an account by its identity provider subject
func (r *AccountRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).Where("external_id = ?", externalID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDs loads several accounts keyed by ID. Missing IDs are skipped.
func (r *AccountRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Account, error) {
	out := make(map[uuid.UUID]*entities.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var ms []models.Account
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	for i := range ms {
		out[ms[i].ID] = r.toEntity(&ms[i])
	}
	return out, nil
}

// Save writes the whole account back. The default address flag is
// normalized first.
func (r *AccountRepository) Save(ctx context.Context, account *entities.Account) error {
	account.NormalizeDefaultAddress()
	account.UpdatedAt = time.Now()

	result := GetDB(ctx, r.db).
		Model(&models.Account{}).
		Where("id = ?", account.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(r.toModel(account))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("save account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count counts all accounts
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByRole counts accounts holding role
func (r *AccountRepository) CountByRole(ctx context.Context, role entities.AccountRole) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Account{}).Where("role = ?", string(role)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AccountRepository) toModel(a *entities.Account) *models.Account {
	m := &models.Account{
		ID:                 a.ID,
		ExternalID:         a.ExternalID,
		Email:              a.Email,
		Role:               string(a.Role),
		Name:               a.Name,
		AvatarURL:          a.AvatarURL,
		Phone:              a.Phone,
		Addresses:          a.Addresses,
		Preferences:        a.Preferences,
		VerificationStatus: string(a.Verification.Status),
		AppliedAt:          a.Verification.AppliedAt.Ptr(),
		VerifiedAt:         a.Verification.VerifiedAt.Ptr(),
		Cart:               a.Cart,
		Wishlist:           a.Wishlist,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.Verification.VerifiedBy.Valid {
		by := a.Verification.VerifiedBy.UUID
		m.VerifiedBy = &by
	}
	if m.VerificationStatus == "" {
		m.VerificationStatus = string(entities.VerificationNone)
	}
	return m
}

func (r *AccountRepository) toEntity(m *models.Account) *entities.Account {
	a := &entities.Account{
		ID:          m.ID,
		ExternalID:  m.ExternalID,
		Email:       m.Email,
		Role:        entities.AccountRole(m.Role),
		Name:        m.Name,
		AvatarURL:   m.AvatarURL,
		Phone:       m.Phone,
		Addresses:   m.Addresses,
		Preferences: m.Preferences,
		Verification: entities.Verification{
			Status:     entities.VerificationStatus(m.VerificationStatus),
			AppliedAt:  null.TimeFromPtr(m.AppliedAt),
			VerifiedAt: null.TimeFromPtr(m.VerifiedAt),
		},
		Cart:      m.Cart,
		Wishlist:  m.Wishlist,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.VerifiedBy != nil {
		a.Verification.VerifiedBy = uuid.NullUUID{UUID: *m.VerifiedBy, Valid: true}
	}
	if a.Addresses == nil {
		a.Addresses = []entities.Address{}
	}
	if a.Cart == nil {
		a.Cart = []entities.CartItem{}
	}
	if a.Wishlist == nil {
		a.Wishlist = []entities.WishlistItem{}
	}
	return a
}
