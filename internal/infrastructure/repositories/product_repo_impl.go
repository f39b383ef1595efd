package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront.backend/internal/domain/entities"
	domainerrors "storefront.backend/internal/domain/errors"
	"storefront.backend/internal/infrastructure/models"
	"storefront.backend/pkg/utils"
)

// ProductRepository implements product data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	if err := GetDB(ctx, r.db).Create(r.toModel(product)).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDs loads several products keyed by ID. Missing IDs are skipped.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Product, error) {
	out := make(map[uuid.UUID]*entities.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var ms []models.Product
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	for i := range ms {
		out[ms[i].ID] = r.toEntity(&ms[i])
	}
	return out, nil
}

// List lists products newest first
func (r *ProductRepository) List(ctx context.Context, filter entities.ProductFilter, pagination utils.PaginationParams) ([]*entities.Product, int64, error) {
	var ms []models.Product
	var totalCount int64

	query := GetDB(ctx, r.db).Model(&models.Product{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.RetailerID.Valid {
		query = query.Where("retailer_id = ?", filter.RetailerID.UUID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", term)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entities.Product, 0, len(ms))
	for i := range ms {
		products = append(products, r.toEntity(&ms[i]))
	}
	return products, totalCount, nil
}

// Update updates the editable fields of a product
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) error {
	product.UpdatedAt = time.Now()
	updates := map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"category":    string(product.Category),
		"price":       product.Price,
		"stock":       product.Stock,
		"image_url":   product.ImageURL,
		"is_active":   product.IsActive,
		"updated_at":  product.UpdatedAt,
	}

	result := GetDB(ctx, r.db).Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a product
func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DecrementStock lowers stock with a conditional update so stock never goes
// negative
func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := GetDB(ctx, r.db).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) toModel(p *entities.Product) *models.Product {
	return &models.Product{
		ID:          p.ID,
		RetailerID:  p.RetailerID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProductRepository) toEntity(m *models.Product) *entities.Product {
	return &entities.Product{
		ID:          m.ID,
		RetailerID:  m.RetailerID,
		Name:        m.Name,
		Description: m.Description,
		Category:    entities.BusinessCategory(m.Category),
		Price:       m.Price,
		Stock:       m.Stock,
		ImageURL:    m.ImageURL,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
