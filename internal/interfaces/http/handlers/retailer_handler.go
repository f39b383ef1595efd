package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/interfaces/http/middleware"
	"storefront.backend/internal/interfaces/http/response"
	"storefront.backend/internal/usecases"
	"storefront.backend/pkg/utils"
)

type retailerApplicationService interface {
	Submit(ctx context.Context, accountID uuid.UUID, input *entities.RetailerApplicationInput) (*entities.RetailerApplication, error)
	GetStatus(ctx context.Context, accountID uuid.UUID) (*entities.RetailerApplication, error)
}

type retailerProductService interface {
	ListOwnProducts(ctx context.Context, retailerID uuid.UUID, pagination utils.PaginationParams) (*usecases.ProductListResult, error)
	CreateProduct(ctx context.Context, retailerID uuid.UUID, input *entities.ProductInput) (*entities.Product, error)
	UpdateProduct(ctx context.Context, retailerID, id uuid.UUID, input *entities.ProductInput) (*entities.Product, error)
	DeleteProduct(ctx context.Context, retailerID, id uuid.UUID) error
}

// RetailerHandler handles retailer applications and retailer-owned products
type RetailerHandler struct {
	applications retailerApplicationService
	products     retailerProductService
}

// NewRetailerHandler creates a new retailer handler
func NewRetailerHandler(applications retailerApplicationService, products retailerProductService) *RetailerHandler {
	return &RetailerHandler{
		applications: applications,
		products:     products,
	}
}

// ApplicationStatus returns the caller's latest application
// GET /api/v1/retailer/application-status
func (h *RetailerHandler) ApplicationStatus(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	app, err := h.applications.GetStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{"application": app}
	if account, ok := middleware.GetAccount(c); ok {
		body["role"] = account.Role
		body["verificationStatus"] = account.Verification.Status
	}
	response.Success(c, http.StatusOK, body)
}

// Apply submits a retailer application
// POST /api/v1/retailer/apply
func (h *RetailerHandler) Apply(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.RetailerApplicationInput
	if !bindJSON(c, &input) {
		return
	}

	app, err := h.applications.Submit(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app)
}

// ListProducts lists the caller's products
// GET /api/v1/retailer/products
func (h *RetailerHandler) ListProducts(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	result, err := h.products.ListOwnProducts(c.Request.Context(), id, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreateProduct creates a product
// POST /api/v1/retailer/products
func (h *RetailerHandler) CreateProduct(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// UpdateProduct updates one of the caller's products
// PUT /api/v1/retailer/products/:id
func (h *RetailerHandler) UpdateProduct(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}

	var input entities.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, productID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// DeleteProduct soft deletes one of the caller's products
// DELETE /api/v1/retailer/products/:id
func (h *RetailerHandler) DeleteProduct(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}
