package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/interfaces/http/response"
)

type accountService interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.Account, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.Account, error)
	ListAddresses(ctx context.Context, id uuid.UUID) ([]entities.Address, error)
	AddAddress(ctx context.Context, id uuid.UUID, input *entities.AddressInput) (*entities.Address, error)
	UpdateAddress(ctx context.Context, id, addressID uuid.UUID, input *entities.AddressInput) (*entities.Address, error)
	DeleteAddress(ctx context.Context, id, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, id, addressID uuid.UUID) ([]entities.Address, error)
}

// AccountHandler handles the caller's own account
type AccountHandler struct {
	accountUsecase accountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUsecase accountService) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// Me returns the current account
// GET /api/v1/account/me
func (h *AccountHandler) Me(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	account, err := h.accountUsecase.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	account.Addresses = account.ActiveAddresses()

	response.Success(c, http.StatusOK, account)
}

// UpdateProfile updates name, avatar and phone
// PUT /api/v1/account/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	account, err := h.accountUsecase.UpdateProfile(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	account.Addresses = account.ActiveAddresses()

	response.Success(c, http.StatusOK, account)
}

// UpdatePreferences updates notification and locale preferences
// PUT /api/v1/account/preferences
func (h *AccountHandler) UpdatePreferences(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.UpdatePreferencesInput
	if !bindJSON(c, &input) {
		return
	}

	account, err := h.accountUsecase.UpdatePreferences(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"preferences": account.Preferences})
}

// ListAddresses lists active addresses
// GET /api/v1/account/addresses
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	addresses, err := h.accountUsecase.ListAddresses(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": addresses})
}

// AddAddress adds an address
// POST /api/v1/account/addresses
func (h *AccountHandler) AddAddress(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var input entities.AddressInput
	if !bindJSON(c, &input) {
		return
	}

	address, err := h.accountUsecase.AddAddress(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, address)
}

// UpdateAddress updates an address
// PUT /api/v1/account/addresses/:addressId
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(c, "addressId", "address")
	if !ok {
		return
	}

	var input entities.AddressInput
	if !bindJSON(c, &input) {
		return
	}

	address, err := h.accountUsecase.UpdateAddress(c.Request.Context(), id, addressID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, address)
}

// DeleteAddress soft deletes an address
// DELETE /api/v1/account/addresses/:addressId
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(c, "addressId", "address")
	if !ok {
		return
	}

	if err := h.accountUsecase.DeleteAddress(c.Request.Context(), id, addressID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Address deleted"})
}

// SetDefaultAddress marks an address as the default
// PUT /api/v1/account/addresses/:addressId/default
func (h *AccountHandler) SetDefaultAddress(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(c, "addressId", "address")
	if !ok {
		return
	}

	addresses, err := h.accountUsecase.SetDefaultAddress(c.Request.Context(), id, addressID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": addresses})
}
