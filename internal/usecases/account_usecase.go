package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/domain/repositories"
	"storefront.backend/pkg/logger"
	"storefront.backend/pkg/utils"
)

// AccountUsecase handles account operations
type AccountUsecase struct {
	accountRepo repositories.AccountRepository
	adminEmails map[string]struct{}
}

// NewAccountUsecase creates a new account usecase. Accounts whose email is
// listed in adminEmails are given the admin role.
func NewAccountUsecase(accountRepo repositories.AccountRepository, adminEmails []string) *AccountUsecase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = normalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &AccountUsecase{
		accountRepo: accountRepo,
		adminEmails: admins,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *AccountUsecase) isAdminEmail(email string) bool {
	_, ok := u.adminEmails[normalizeEmail(email)]
	return ok
}

// ResolveAccount returns the account of an authenticated identity, creating
// it on first login
func (u *AccountUsecase) ResolveAccount(ctx context.Context, identity *entities.Identity) (*entities.Account, error) {
	if identity == nil || identity.Subject == "" {
		return nil, domainerrors.Unauthorized("Missing identity")
	}

	account, err := u.accountRepo.GetByExternalID(ctx, identity.Subject)
	if err == nil {
		return u.refresh(ctx, account, identity)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	account = &entities.Account{
		ID:          utils.GenerateUUIDv7(),
		ExternalID:  identity.Subject,
		Email:       normalizeEmail(identity.Email),
		Role:        entities.AccountRoleBuyer,
		Name:        identity.Name,
		AvatarURL:   identity.AvatarURL,
		Addresses:   []entities.Address{},
		Preferences: entities.DefaultPreferences(),
		Verification: entities.Verification{
			Status: entities.VerificationNone,
		},
		Cart:      []entities.CartItem{},
		Wishlist:  []entities.WishlistItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.isAdminEmail(account.Email) {
		account.Role = entities.AccountRoleAdmin
	}

	if err := u.accountRepo.Create(ctx, account); err != nil {
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, err
		}
		// A concurrent first login may have created the record already.
		existing, getErr := u.accountRepo.GetByExternalID(ctx, identity.Subject)
		if getErr != nil {
			if errors.Is(getErr, domainerrors.ErrNotFound) {
				return nil, domainerrors.Conflict("Email is already registered to another account")
			}
			return nil, getErr
		}
		return existing, nil
	}

	logger.Info(ctx, "Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)),
	)
	return account, nil
}

// refresh syncs identity provider data into a known account. It only writes
// when something changed.
func (u *AccountUsecase) refresh(ctx context.Context, account *entities.Account, identity *entities.Identity) (*entities.Account, error) {
	changed := false
	if email := normalizeEmail(identity.Email); email != "" && email != account.Email {
		account.Email = email
		changed = true
	}
	if account.Name == "" && identity.Name != "" {
		account.Name = identity.Name
		changed = true
	}
	if account.AvatarURL == "" && identity.AvatarURL != "" {
		account.AvatarURL = identity.AvatarURL
		changed = true
	}
	if account.Role != entities.AccountRoleAdmin && u.isAdminEmail(account.Email) {
		account.Role = entities.AccountRoleAdmin
		changed = true
	}
	if !changed {
		return account, nil
	}

	if err := u.accountRepo.Save(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Email is already registered to another account")
		}
		return nil, err
	}
	return account, nil
}

// GetAccount gets an account by ID
func (u *AccountUsecase) GetAccount(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Account not found")
		}
		return nil, err
	}
	return account, nil
}

// UpdateProfile replaces the editable profile fields
func (u *AccountUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.Account, error) {
	return u.mutate(ctx, id, func(account *entities.Account) error {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domainerrors.Validation("name", "Name is required")
		}
		account.Name = name
		account.AvatarURL = strings.TrimSpace(input.AvatarURL)
		account.Phone = strings.TrimSpace(input.Phone)
		return nil
	})
}

// UpdatePreferences replaces the account preferences. Empty currency or
// language keep their current value.
func (u *AccountUsecase) UpdatePreferences(ctx context.Context, id uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.Account, error) {
	return u.mutate(ctx, id, func(account *entities.Account) error {
		prefs := account.Preferences
		prefs.EmailNotifications = input.EmailNotifications
		prefs.SMSNotifications = input.SMSNotifications
		prefs.MarketingEmails = input.MarketingEmails
		if input.Currency != "" {
			prefs.Currency = input.Currency
		}
		if input.Language != "" {
			prefs.Language = input.Language
		}
		account.Preferences = prefs
		return nil
	})
}

// ListAddresses lists the active addresses in book order
func (u *AccountUsecase) ListAddresses(ctx context.Context, id uuid.UUID) ([]entities.Address, error) {
	account, err := u.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.ActiveAddresses(), nil
}

// AddAddress appends an address to the book
func (u *AccountUsecase) AddAddress(ctx context.Context, id uuid.UUID, input *entities.AddressInput) (*entities.Address, error) {
	var addr entities.Address
	_, err := u.mutate(ctx, id, func(account *entities.Account) error {
		addr = account.AddAddress(utils.GenerateUUIDv7(), input)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// UpdateAddress replaces the fields of an active address
func (u *AccountUsecase) UpdateAddress(ctx context.Context, id, addressID uuid.UUID, input *entities.AddressInput) (*entities.Address, error) {
	var addr entities.Address
	_, err := u.mutate(ctx, id, func(account *entities.Account) error {
		var err error
		addr, err = account.UpdateAddress(addressID, input)
		return addressError(err)
	})
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// DeleteAddress soft deletes an address
func (u *AccountUsecase) DeleteAddress(ctx context.Context, id, addressID uuid.UUID) error {
	_, err := u.mutate(ctx, id, func(account *entities.Account) error {
		return addressError(account.RemoveAddress(addressID))
	})
	return err
}

// SetDefaultAddress makes addressID the only default address
func (u *AccountUsecase) SetDefaultAddress(ctx context.Context, id, addressID uuid.UUID) ([]entities.Address, error) {
	account, err := u.mutate(ctx, id, func(account *entities.Account) error {
		return addressError(account.SetDefaultAddress(addressID))
	})
	if err != nil {
		return nil, err
	}
	return account.ActiveAddresses(), nil
}

// mutate loads the account, applies fn and writes the account back in one
// save
func (u *AccountUsecase) mutate(ctx context.Context, id uuid.UUID, fn func(account *entities.Account) error) (*entities.Account, error) {
	account, err := u.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(account); err != nil {
		return nil, err
	}
	if err := u.accountRepo.Save(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Account not found")
		}
		return nil, err
	}
	return account, nil
}

func addressError(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("Address not found")
	}
	return err
}
