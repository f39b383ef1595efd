package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/domain/repositories"
	"storefront.backend/pkg/logger"
	"storefront.backend/pkg/metrics"
	"storefront.backend/pkg/utils"
)

// RetailerApplicationUsecase drives the retailer application workflow. Every
// transition writes the application and the account in one transaction.
type RetailerApplicationUsecase struct {
	accountRepo repositories.AccountRepository
	appRepo     repositories.RetailerApplicationRepository
	uow         repositories.UnitOfWork
}

// NewRetailerApplicationUsecase creates a new retailer application usecase
func NewRetailerApplicationUsecase(
	accountRepo repositories.AccountRepository,
	appRepo repositories.RetailerApplicationRepository,
	uow repositories.UnitOfWork,
) *RetailerApplicationUsecase {
	return &RetailerApplicationUsecase{
		accountRepo: accountRepo,
		appRepo:     appRepo,
		uow:         uow,
	}
}

// Submit files a new application for accountID and marks the account
// verification as pending
func (u *RetailerApplicationUsecase) Submit(ctx context.Context, accountID uuid.UUID, input *entities.RetailerApplicationInput) (*entities.RetailerApplication, error) {
	var app *entities.RetailerApplication

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		account, err := u.accountRepo.GetByID(txCtx, accountID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Account not found")
			}
			return err
		}

		if err := u.checkCanSubmit(txCtx, account); err != nil {
			return err
		}

		fields, appErr := normalizeApplicationInput(input)
		if appErr != nil {
			return appErr
		}

		now := time.Now()
		app = &entities.RetailerApplication{
			ID:                  utils.GenerateUUIDv7(),
			AccountID:           account.ID,
			Status:              entities.ApplicationStatusPending,
			BusinessName:        fields.BusinessName,
			BusinessDescription: fields.BusinessDescription,
			BusinessCategory:    entities.BusinessCategory(fields.BusinessCategory),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := u.appRepo.Create(txCtx, app); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.Conflict("A retailer application is already pending")
			}
			return err
		}

		account.MarkVerificationPending(now)
		if err := u.accountRepo.Save(txCtx, account); err != nil {
			logger.Error(txCtx, "Retailer application created but account verification update failed, rolling back",
				zap.String("application_id", app.ID.String()),
				zap.String("account_id", account.ID.String()),
				zap.Error(err),
			)
			metrics.RecordApplicationEvent(metrics.EventApplicationRolledBack)
			return fmt.Errorf("mark verification pending: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplicationEvent(metrics.EventApplicationSubmitted)
	logger.Info(ctx, "Retailer application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("account_id", accountID.String()),
	)
	return app, nil
}

// checkCanSubmit enforces the state preconditions in order
func (u *RetailerApplicationUsecase) checkCanSubmit(ctx context.Context, account *entities.Account) error {
	if account.IsRetailer() {
		return domainerrors.Conflict("Account is already a retailer")
	}

	pending, err := u.appRepo.ExistsByAccountAndStatus(ctx, account.ID, entities.ApplicationStatusPending)
	if err != nil {
		return err
	}
	if pending {
		return domainerrors.Conflict("A retailer application is already pending")
	}

	rejected, err := u.appRepo.ExistsByAccountAndStatus(ctx, account.ID, entities.ApplicationStatusRejected)
	if err != nil {
		return err
	}
	if rejected || account.Verification.Status == entities.VerificationRejected {
		return domainerrors.Conflict("A rejected retailer application cannot be resubmitted")
	}
	return nil
}

// normalizeApplicationInput trims the fields and validates them. Only the
// first failing rule is reported.
func normalizeApplicationInput(input *entities.RetailerApplicationInput) (*entities.RetailerApplicationInput, *domainerrors.AppError) {
	if input == nil {
		input = &entities.RetailerApplicationInput{}
	}
	out := &entities.RetailerApplicationInput{
		BusinessName:        strings.TrimSpace(input.BusinessName),
		BusinessDescription: strings.TrimSpace(input.BusinessDescription),
		BusinessCategory:    strings.TrimSpace(input.BusinessCategory),
	}

	missing := map[string]string{}
	if out.BusinessName == "" {
		missing["businessName"] = "Business name is required"
	}
	if out.BusinessDescription == "" {
		missing["businessDescription"] = "Business description is required"
	}
	if out.BusinessCategory == "" {
		missing["businessCategory"] = "Business category is required"
	}
	if len(missing) > 0 {
		return nil, domainerrors.ValidationFields(missing)
	}

	if n := utf8.RuneCountInString(out.BusinessName); n < BusinessNameMinLength {
		return nil, domainerrors.Validation("businessName", fmt.Sprintf("Business name must be at least %d characters", BusinessNameMinLength))
	} else if n > BusinessNameMaxLength {
		return nil, domainerrors.Validation("businessName", fmt.Sprintf("Business name must be at most %d characters", BusinessNameMaxLength))
	}

	if n := utf8.RuneCountInString(out.BusinessDescription); n < BusinessDescriptionMinLength {
		return nil, domainerrors.Validation("businessDescription", fmt.Sprintf("Business description must be at least %d characters", BusinessDescriptionMinLength))
	} else if n > BusinessDescriptionMaxLength {
		return nil, domainerrors.Validation("businessDescription", fmt.Sprintf("Business description must be at most %d characters", BusinessDescriptionMaxLength))
	}

	if !entities.BusinessCategory(out.BusinessCategory).IsValid() {
		return nil, domainerrors.Validation("businessCategory", "Business category must be one of: "+categoryList())
	}
	return out, nil
}

func categoryList() string {
	names := make([]string, 0, len(entities.BusinessCategories))
	for _, c := range entities.BusinessCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// Approve accepts a pending application and promotes the applicant
func (u *RetailerApplicationUsecase) Approve(ctx context.Context, applicationID, adminID uuid.UUID) (*entities.RetailerApplication, error) {
	app, err := u.decide(ctx, applicationID, func(app *entities.RetailerApplication, applicant *entities.Account, at time.Time) {
		app.Approve(adminID, at)
		applicant.ApproveRetailer(adminID, at)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplicationEvent(metrics.EventApplicationApproved)
	logger.Info(ctx, "Retailer application approved",
		zap.String("application_id", app.ID.String()),
		zap.String("account_id", app.AccountID.String()),
		zap.String("admin_id", adminID.String()),
	)
	return app, nil
}

// Reject declines a pending application. The applicant role is unchanged.
func (u *RetailerApplicationUsecase) Reject(ctx context.Context, applicationID, adminID uuid.UUID, reason string) (*entities.RetailerApplication, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainerrors.Validation("rejectionReason", "Rejection reason is required")
	}
	if utf8.RuneCountInString(reason) > RejectionReasonMaxLength {
		return nil, domainerrors.Validation("rejectionReason", fmt.Sprintf("Rejection reason must be at most %d characters", RejectionReasonMaxLength))
	}

	app, err := u.decide(ctx, applicationID, func(app *entities.RetailerApplication, applicant *entities.Account, at time.Time) {
		app.Reject(adminID, at, reason)
		applicant.RejectRetailer(adminID, at)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplicationEvent(metrics.EventApplicationRejected)
	logger.Info(ctx, "Retailer application rejected",
		zap.String("application_id", app.ID.String()),
		zap.String("account_id", app.AccountID.String()),
		zap.String("admin_id", adminID.String()),
	)
	return app, nil
}

// decide loads a pending application and its applicant, applies the
// decision and persists both records in one transaction
func (u *RetailerApplicationUsecase) decide(
	ctx context.Context,
	applicationID uuid.UUID,
	apply func(app *entities.RetailerApplication, applicant *entities.Account, at time.Time),
) (*entities.RetailerApplication, error) {
	var app *entities.RetailerApplication

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		app, err = u.appRepo.GetByID(txCtx, applicationID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Retailer application not found")
			}
			return err
		}
		if !app.IsPending() {
			return domainerrors.Conflict("Retailer application has already been reviewed")
		}

		applicant, err := u.accountRepo.GetByID(txCtx, app.AccountID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Applicant account not found")
			}
			return err
		}

		apply(app, applicant, time.Now())

		if err := u.appRepo.UpdateDecision(txCtx, app); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				return domainerrors.Conflict("Retailer application has already been reviewed")
			}
			return err
		}

		if err := u.accountRepo.Save(txCtx, applicant); err != nil {
			logger.Error(txCtx, "Retailer application decided but applicant update failed, rolling back",
				zap.String("application_id", app.ID.String()),
				zap.String("account_id", applicant.ID.String()),
				zap.String("status", string(app.Status)),
				zap.Error(err),
			)
			metrics.RecordApplicationEvent(metrics.EventApplicationRolledBack)
			return fmt.Errorf("update applicant verification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// GetStatus returns the most recent application of accountID, or nil when
// the account never applied
func (u *RetailerApplicationUsecase) GetStatus(ctx context.Context, accountID uuid.UUID) (*entities.RetailerApplication, error) {
	app, err := u.appRepo.GetLatestByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return app, nil
}
