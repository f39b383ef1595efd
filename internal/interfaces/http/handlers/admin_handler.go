package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/interfaces/http/response"
	"storefront.backend/internal/usecases"
)

type applicationReviewService interface {
	Approve(ctx context.Context, applicationID, adminID uuid.UUID) (*entities.RetailerApplication, error)
	Reject(ctx context.Context, applicationID, adminID uuid.UUID, reason string) (*entities.RetailerApplication, error)
}

type adminQueryService interface {
	ListApplications(ctx context.Context, status string) ([]*entities.ApplicationWithApplicant, error)
	ListRecentApplications(ctx context.Context, limit int) ([]*entities.ApplicationWithApplicant, error)
	GetStats(ctx context.Context) (*entities.DashboardStats, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	reviews applicationReviewService
	queries adminQueryService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reviews applicationReviewService, queries adminQueryService) *AdminHandler {
	return &AdminHandler{
		reviews: reviews,
		queries: queries,
	}
}

// ListApplications lists retailer applications, optionally by status
// GET /api/v1/admin/retailer-applications?status=
func (h *AdminHandler) ListApplications(c *gin.Context) {
	items, err := h.queries.ListApplications(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// ApproveApplication approves a pending application
// POST /api/v1/admin/retailer-applications/:id/approve
func (h *AdminHandler) ApproveApplication(c *gin.Context) {
	adminID, ok := accountID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "application")
	if !ok {
		return
	}

	app, err := h.reviews.Approve(c.Request.Context(), id, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// RejectApplication rejects a pending application
// POST /api/v1/admin/retailer-applications/:id/reject
func (h *AdminHandler) RejectApplication(c *gin.Context) {
	adminID, ok := accountID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "application")
	if !ok {
		return
	}

	var input entities.RejectApplicationInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	app, err := h.reviews.Reject(c.Request.Context(), id, adminID, input.RejectionReason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// Stats returns the dashboard counters
// GET /api/v1/admin/dashboard/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.queries.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// RecentApplications returns the newest applications
// GET /api/v1/admin/dashboard/recent
func (h *AdminHandler) RecentApplications(c *gin.Context) {
	items, err := h.queries.ListRecentApplications(c.Request.Context(), usecases.RecentApplicationsLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}
