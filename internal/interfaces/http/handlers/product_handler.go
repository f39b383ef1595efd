package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/interfaces/http/response"
	"storefront.backend/internal/usecases"
	"storefront.backend/pkg/utils"
)

type productService interface {
	ListProducts(ctx context.Context, category, search string, pagination utils.PaginationParams) (*usecases.ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	Recommendations(ctx context.Context, id uuid.UUID, limit int) ([]*entities.Product, error)
}

// ProductHandler handles public catalog endpoints
type ProductHandler struct {
	productUsecase productService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase productService) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase}
}

// ListProducts lists active products
// GET /api/v1/products?page=&limit=&category=&search=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	result, err := h.productUsecase.ListProducts(
		c.Request.Context(),
		c.Query("category"),
		c.Query("search"),
		paginationFromQuery(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetProduct gets an active product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productUsecase.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Recommendations lists products related to a product
// GET /api/v1/products/:id/recommendations?limit=
func (h *ProductHandler) Recommendations(c *gin.Context) {
	id, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.productUsecase.Recommendations(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}
