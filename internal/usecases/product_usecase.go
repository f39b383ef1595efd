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

// RecommendationClient returns product ids related to a product
type RecommendationClient interface {
	Recommend(ctx context.Context, productID uuid.UUID, limit int) ([]uuid.UUID, error)
}

// ProductUsecase handles catalog browsing and retailer product management
type ProductUsecase struct {
	productRepo repositories.ProductRepository
	recommender RecommendationClient
}

// NewProductUsecase creates a new product usecase. recommender may be nil,
// in which case recommendations are always empty.
func NewProductUsecase(productRepo repositories.ProductRepository, recommender RecommendationClient) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		recommender: recommender,
	}
}

// ProductListResult is a page of products with its metadata
type ProductListResult struct {
	Items []*entities.Product  `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// ListProducts lists active products newest first
func (u *ProductUsecase) ListProducts(ctx context.Context, category, search string, pagination utils.PaginationParams) (*ProductListResult, error) {
	filter := entities.ProductFilter{
		Search:     search,
		ActiveOnly: true,
	}
	if category != "" {
		c := entities.BusinessCategory(category)
		if !c.IsValid() {
			return nil, domainerrors.Validation("category", "Category must be one of: "+categoryList())
		}
		filter.Category = c
	}
	return u.list(ctx, filter, pagination)
}

// ListOwnProducts lists every product of a retailer, inactive ones included
func (u *ProductUsecase) ListOwnProducts(ctx context.Context, retailerID uuid.UUID, pagination utils.PaginationParams) (*ProductListResult, error) {
	filter := entities.ProductFilter{
		RetailerID: uuid.NullUUID{UUID: retailerID, Valid: true},
	}
	return u.list(ctx, filter, pagination)
}

func (u *ProductUsecase) list(ctx context.Context, filter entities.ProductFilter, pagination utils.PaginationParams) (*ProductListResult, error) {
	products, total, err := u.productRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{
		Items: products,
		Meta:  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	}, nil
}

// GetProduct gets an active product
func (u *ProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, domainerrors.NotFound("Product not found")
	}
	return product, nil
}

// Recommendations returns active products related to id, in the order the
// recommendation service ranked them
func (u *ProductUsecase) Recommendations(ctx context.Context, id uuid.UUID, limit int) ([]*entities.Product, error) {
	if _, err := u.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > MaxRecommendationLimit {
		limit = MaxRecommendationLimit
	}

	out := []*entities.Product{}
	if u.recommender == nil {
		return out, nil
	}

	ids, err := u.recommender.Recommend(ctx, id, limit)
	if err != nil {
		logger.Warn(ctx, "Recommendation service failed",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return out, nil
	}

	products, err := u.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, pid := range ids {
		if pid == id {
			continue
		}
		if p, ok := products[pid]; ok && p.IsActive {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// CreateProduct creates a product owned by retailerID
func (u *ProductUsecase) CreateProduct(ctx context.Context, retailerID uuid.UUID, input *entities.ProductInput) (*entities.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entities.Product{
		ID:         utils.GenerateUUIDv7(),
		RetailerID: retailerID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyProductInput(product, input)

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("retailer_id", retailerID.String()),
	)
	return product, nil
}

// UpdateProduct updates a product owned by retailerID
func (u *ProductUsecase) UpdateProduct(ctx context.Context, retailerID, id uuid.UUID, input *entities.ProductInput) (*entities.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := u.ownedProduct(ctx, retailerID, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, input)

	if err := u.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft deletes a product owned by retailerID
func (u *ProductUsecase) DeleteProduct(ctx context.Context, retailerID, id uuid.UUID) error {
	if _, err := u.ownedProduct(ctx, retailerID, id); err != nil {
		return err
	}
	if err := u.productRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Product not found")
		}
		return err
	}

	logger.Info(ctx, "Product deleted",
		zap.String("product_id", id.String()),
		zap.String("retailer_id", retailerID.String()),
	)
	return nil
}

func (u *ProductUsecase) ownedProduct(ctx context.Context, retailerID, id uuid.UUID) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Product not found")
		}
		return nil, err
	}
	if product.RetailerID != retailerID {
		return nil, domainerrors.Forbidden("Product belongs to another retailer")
	}
	return product, nil
}

func validateProductInput(input *entities.ProductInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if !entities.BusinessCategory(input.Category).IsValid() {
		fields["category"] = "Category must be one of: " + categoryList()
	}
	if !input.Price.IsPositive() {
		fields["price"] = "Price must be greater than zero"
	}
	if input.Stock < 0 {
		fields["stock"] = "Stock cannot be negative"
	}
	if len(fields) > 0 {
		return domainerrors.ValidationFields(fields)
	}
	return nil
}

func applyProductInput(product *entities.Product, input *entities.ProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Category = entities.BusinessCategory(input.Category)
	product.Price = input.Price
	product.Stock = input.Stock
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}
