package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/usecases"
	"storefront.backend/pkg/utils"
)

func activeProduct(retailerID uuid.UUID, price string, stock int) *entities.Product {
	now := time.Now()
	return &entities.Product{
		ID:         uuid.New(),
		RetailerID: retailerID,
		Name:       "Ceramic Mug",
		Category:   entities.CategoryHomeGarden,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func productInput() *entities.ProductInput {
	return &entities.ProductInput{
		Name:        " Ceramic Mug ",
		Description: "Hand thrown",
		Category:    string(entities.CategoryHomeGarden),
		Price:       decimal.RequireFromString("12.50"),
		Stock:       10,
	}
}

func TestProductUsecase_ListProducts(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)

	pagination := utils.GetPaginationParams(2, 10)
	filter := entities.ProductFilter{Category: entities.CategoryFashion, Search: "scarf", ActiveOnly: true}
	items := []*entities.Product{activeProduct(uuid.New(), "5", 1)}
	repo.On("List", mock.Anything, filter, pagination).Return(items, int64(11), nil).Once()

	result, err := uc.ListProducts(context.Background(), "Fashion", "scarf", pagination)
	require.NoError(t, err)
	assert.Equal(t, items, result.Items)
	assert.Equal(t, utils.PaginationMeta{Page: 2, Limit: 10, TotalCount: 11, TotalPages: 2}, result.Meta)
}

func TestProductUsecase_ListProducts_InvalidCategory(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)

	_, err := uc.ListProducts(context.Background(), "Weapons", "", utils.GetPaginationParams(1, 20))
	assertAppError(t, err, domainerrors.CodeValidation)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductUsecase_ListOwnProducts(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)
	retailerID := uuid.New()
	pagination := utils.GetPaginationParams(1, 20)

	repo.On("List", mock.Anything, entities.ProductFilter{RetailerID: uuid.NullUUID{UUID: retailerID, Valid: true}}, pagination).
		Return([]*entities.Product{}, int64(0), nil).Once()

	result, err := uc.ListOwnProducts(context.Background(), retailerID, pagination)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestProductUsecase_GetProduct(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)

	active := activeProduct(uuid.New(), "3", 1)
	inactive := activeProduct(uuid.New(), "3", 1)
	inactive.IsActive = false
	missing := uuid.New()

	repo.On("GetByID", mock.Anything, active.ID).Return(active, nil).Once()
	repo.On("GetByID", mock.Anything, inactive.ID).Return(inactive, nil).Once()
	repo.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()

	got, err := uc.GetProduct(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = uc.GetProduct(context.Background(), inactive.ID)
	assertAppError(t, err, domainerrors.CodeNotFound)

	_, err = uc.GetProduct(context.Background(), missing)
	assertAppError(t, err, domainerrors.CodeNotFound)
}

func TestProductUsecase_Recommendations(t *testing.T) {
	repo := new(MockProductRepository)
	recommender := new(MockRecommendationClient)
	uc := usecases.NewProductUsecase(repo, recommender)

	base := activeProduct(uuid.New(), "10", 5)
	a := activeProduct(uuid.New(), "1", 1)
	b := activeProduct(uuid.New(), "2", 1)
	hidden := activeProduct(uuid.New(), "3", 1)
	hidden.IsActive = false
	unknown := uuid.New()
	ids := []uuid.UUID{b.ID, hidden.ID, unknown, base.ID, a.ID}

	repo.On("GetByID", mock.Anything, base.ID).Return(base, nil).Once()
	recommender.On("Recommend", mock.Anything, base.ID, usecases.DefaultRecommendationLimit).Return(ids, nil).Once()
	repo.On("GetByIDs", mock.Anything, ids).Return(map[uuid.UUID]*entities.Product{
		a.ID: a, b.ID: b, hidden.ID: hidden, base.ID: base,
	}, nil).Once()

	got, err := uc.Recommendations(context.Background(), base.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestProductUsecase_Recommendations_ServiceFailure(t *testing.T) {
	repo := new(MockProductRepository)
	recommender := new(MockRecommendationClient)
	uc := usecases.NewProductUsecase(repo, recommender)

	base := activeProduct(uuid.New(), "10", 5)
	repo.On("GetByID", mock.Anything, base.ID).Return(base, nil).Once()
	recommender.On("Recommend", mock.Anything, base.ID, usecases.MaxRecommendationLimit).Return(nil, errors.New("timeout")).Once()

	got, err := uc.Recommendations(context.Background(), base.ID, 500)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestProductUsecase_Recommendations_NoClient(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)

	base := activeProduct(uuid.New(), "10", 5)
	repo.On("GetByID", mock.Anything, base.ID).Return(base, nil).Once()

	got, err := uc.Recommendations(context.Background(), base.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductUsecase_CreateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)
	retailerID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Product) bool {
		return p.RetailerID == retailerID && p.Name == "Ceramic Mug" && p.IsActive
	})).Return(nil).Once()

	got, err := uc.CreateProduct(context.Background(), retailerID, productInput())
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 10, got.Stock)
	repo.AssertExpectations(t)
}

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)

	input := productInput()
	input.Category = "Weapons"
	input.Price = decimal.Zero
	input.Stock = -1

	_, err := uc.CreateProduct(context.Background(), uuid.New(), input)
	appErr := assertAppError(t, err, domainerrors.CodeValidation)
	assert.Contains(t, appErr.Fields, "category")
	assert.Contains(t, appErr.Fields, "price")
	assert.Contains(t, appErr.Fields, "stock")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_UpdateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)
	retailerID := uuid.New()
	product := activeProduct(retailerID, "1", 1)

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil).Once()
	repo.On("Update", mock.Anything, product).Return(nil).Once()

	inactive := false
	input := productInput()
	input.IsActive = &inactive
	got, err := uc.UpdateProduct(context.Background(), retailerID, product.ID, input)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Hand thrown", got.Description)
}

func TestProductUsecase_UpdateProduct_NotOwner(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)
	product := activeProduct(uuid.New(), "1", 1)

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil).Once()

	_, err := uc.UpdateProduct(context.Background(), uuid.New(), product.ID, productInput())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUsecase_DeleteProduct(t *testing.T) {
	repo := new(MockProductRepository)
	uc := usecases.NewProductUsecase(repo, nil)
	retailerID := uuid.New()
	product := activeProduct(retailerID, "1", 1)

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil).Twice()
	repo.On("SoftDelete", mock.Anything, product.ID).Return(nil).Once()

	require.NoError(t, uc.DeleteProduct(context.Background(), retailerID, product.ID))

	err := uc.DeleteProduct(context.Background(), uuid.New(), product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	repo.AssertNumberOfCalls(t, "SoftDelete", 1)
}
