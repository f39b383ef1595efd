package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/usecases"
)

func TestAdminUsecase_ListApplications_JoinsApplicants(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	first := buyerAccount()
	first.Name = "First"
	first.AvatarURL = "https://cdn.example.com/a.png"
	second := buyerAccount()
	second.Email = "second@mail.com"

	apps := []*entities.RetailerApplication{
		pendingApplication(first.ID),
		pendingApplication(second.ID),
		pendingApplication(first.ID),
	}
	pending := entities.ApplicationStatusPending
	appRepo.On("List", mock.Anything, &pending, 0).Return(apps, nil).Once()
	accountRepo.On("GetByIDs", mock.Anything, []uuid.UUID{first.ID, second.ID}).Return(map[uuid.UUID]*entities.Account{
		first.ID:  first,
		second.ID: second,
	}, nil).Once()

	got, err := uc.ListApplications(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, apps[0].ID, got[0].ID)
	assert.Equal(t, "First", got[0].Applicant.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", got[0].Applicant.AvatarURL)
	assert.Equal(t, "second@mail.com", got[1].Applicant.Email)
	assert.Equal(t, first.ID, got[2].Applicant.ID)
}

func TestAdminUsecase_ListApplications_AllStatuses(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	appRepo.On("List", mock.Anything, (*entities.ApplicationStatus)(nil), 0).Return([]*entities.RetailerApplication{}, nil).Once()
	accountRepo.On("GetByIDs", mock.Anything, []uuid.UUID{}).Return(map[uuid.UUID]*entities.Account{}, nil).Once()

	got, err := uc.ListApplications(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAdminUsecase_ListApplications_MissingApplicant(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	app := pendingApplication(uuid.New())
	appRepo.On("List", mock.Anything, mock.Anything, 0).Return([]*entities.RetailerApplication{app}, nil).Once()
	accountRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entities.Account{}, nil).Once()

	got, err := uc.ListApplications(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Applicant)
}

func TestAdminUsecase_ListApplications_InvalidStatus(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	_, err := uc.ListApplications(context.Background(), "archived")
	appErr := assertAppError(t, err, domainerrors.CodeValidation)
	assert.Contains(t, appErr.Fields, "status")
	appRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUsecase_ListRecentApplications(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	appRepo.On("List", mock.Anything, (*entities.ApplicationStatus)(nil), usecases.RecentApplicationsLimit).
		Return([]*entities.RetailerApplication{}, nil).Once()
	accountRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entities.Account{}, nil).Once()

	_, err := uc.ListRecentApplications(context.Background(), 0)
	require.NoError(t, err)
	appRepo.AssertExpectations(t)
}

func TestAdminUsecase_ListRecentApplications_StoreError(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	appRepo.On("List", mock.Anything, mock.Anything, 3).Return(nil, errors.New("boom")).Once()

	_, err := uc.ListRecentApplications(context.Background(), 3)
	assert.Error(t, err)
}

func TestAdminUsecase_GetStats(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	pending := entities.ApplicationStatusPending
	accountRepo.On("Count", mock.Anything).Return(int64(12), nil).Once()
	accountRepo.On("CountByRole", mock.Anything, entities.AccountRoleRetailer).Return(int64(3), nil).Once()
	appRepo.On("Count", mock.Anything, &pending).Return(int64(2), nil).Once()
	appRepo.On("Count", mock.Anything, (*entities.ApplicationStatus)(nil)).Return(int64(7), nil).Once()

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entities.DashboardStats{
		TotalAccounts:       12,
		TotalRetailers:      3,
		PendingApplications: 2,
		TotalApplications:   7,
	}, stats)
}

func TestAdminUsecase_GetStats_Error(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	appRepo := new(MockRetailerApplicationRepository)
	uc := usecases.NewAdminUsecase(accountRepo, appRepo)

	accountRepo.On("Count", mock.Anything).Return(int64(0), errors.New("boom")).Once()

	_, err := uc.GetStats(context.Background())
	assert.Error(t, err)
	accountRepo.AssertNotCalled(t, "CountByRole", mock.Anything, mock.Anything)
}
