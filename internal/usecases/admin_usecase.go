package usecases

import (
	"context"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/domain/repositories"
)

// AdminUsecase serves the read side of the admin dashboard
type AdminUsecase struct {
	accountRepo repositories.AccountRepository
	appRepo     repositories.RetailerApplicationRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(accountRepo repositories.AccountRepository, appRepo repositories.RetailerApplicationRepository) *AdminUsecase {
	return &AdminUsecase{
		accountRepo: accountRepo,
		appRepo:     appRepo,
	}
}

// ListApplications lists applications newest first, optionally filtered by
// status, each joined with its applicant
func (u *AdminUsecase) ListApplications(ctx context.Context, status string) ([]*entities.ApplicationWithApplicant, error) {
	var filter *entities.ApplicationStatus
	if status != "" {
		s := entities.ApplicationStatus(status)
		if !s.IsValid() {
			return nil, domainerrors.Validation("status", "Status must be one of: pending, approved, rejected")
		}
		filter = &s
	}

	apps, err := u.appRepo.List(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return u.withApplicants(ctx, apps)
}

// ListRecentApplications returns the newest applications of any status
func (u *AdminUsecase) ListRecentApplications(ctx context.Context, limit int) ([]*entities.ApplicationWithApplicant, error) {
	if limit <= 0 {
		limit = RecentApplicationsLimit
	}
	apps, err := u.appRepo.List(ctx, nil, limit)
	if err != nil {
		return nil, err
	}
	return u.withApplicants(ctx, apps)
}

// GetStats returns the dashboard counters
func (u *AdminUsecase) GetStats(ctx context.Context) (*entities.DashboardStats, error) {
	totalAccounts, err := u.accountRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRetailers, err := u.accountRepo.CountByRole(ctx, entities.AccountRoleRetailer)
	if err != nil {
		return nil, err
	}
	pending := entities.ApplicationStatusPending
	pendingApplications, err := u.appRepo.Count(ctx, &pending)
	if err != nil {
		return nil, err
	}
	totalApplications, err := u.appRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &entities.DashboardStats{
		TotalAccounts:       totalAccounts,
		TotalRetailers:      totalRetailers,
		PendingApplications: pendingApplications,
		TotalApplications:   totalApplications,
	}, nil
}

func (u *AdminUsecase) withApplicants(ctx context.Context, apps []*entities.RetailerApplication) ([]*entities.ApplicationWithApplicant, error) {
	seen := make(map[uuid.UUID]struct{}, len(apps))
	ids := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		if _, ok := seen[app.AccountID]; ok {
			continue
		}
		seen[app.AccountID] = struct{}{}
		ids = append(ids, app.AccountID)
	}

	accounts, err := u.accountRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.ApplicationWithApplicant, 0, len(apps))
	for _, app := range apps {
		item := &entities.ApplicationWithApplicant{RetailerApplication: app}
		if account, ok := accounts[app.AccountID]; ok {
			item.Applicant = &entities.ApplicantSummary{
				ID:        account.ID,
				Email:     account.Email,
				Name:      account.Name,
				AvatarURL: account.AvatarURL,
				Role:      account.Role,
				Status:    account.Verification.Status,
			}
		}
		out = append(out, item)
	}
	return out, nil
}
