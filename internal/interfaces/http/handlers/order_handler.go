package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/interfaces/http/response"
	"storefront.backend/internal/usecases"
	"storefront.backend/pkg/utils"
)

type orderService interface {
	Checkout(ctx context.Context, accountID uuid.UUID, input *entities.CheckoutInput) (*entities.Order, error)
	ListOrders(ctx context.Context, accountID uuid.UUID, pagination utils.PaginationParams) (*usecases.OrderListResult, error)
	GetOrder(ctx context.Context, accountID, id uuid.UUID) (*entities.Order, error)
}

// OrderHandler handles checkout and order history
type OrderHandler struct {
	orderUsecase orderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase orderService) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

// Checkout places an order from the cart
// POST /api/v1/orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.CheckoutInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	order, err := h.orderUsecase.Checkout(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// ListOrders lists the caller's orders
// GET /api/v1/orders?page=&limit=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	result, err := h.orderUsecase.ListOrders(c.Request.Context(), id, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetOrder gets one of the caller's orders
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderUsecase.GetOrder(c.Request.Context(), id, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}
