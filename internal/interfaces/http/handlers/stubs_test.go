package handlers

import (
	"context"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
	"storefront.backend/internal/usecases"
	"storefront.backend/pkg/utils"
)

type accountServiceStub struct {
	getFn           func(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	profileFn       func(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.Account, error)
	preferencesFn   func(ctx context.Context, id uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.Account, error)
	listAddressesFn func(ctx context.Context, id uuid.UUID) ([]entities.Address, error)
	addAddressFn    func(ctx context.Context, id uuid.UUID, input *entities.AddressInput) (*entities.Address, error)
	updateAddressFn func(ctx context.Context, id, addressID uuid.UUID, input *entities.AddressInput) (*entities.Address, error)
	deleteAddressFn func(ctx context.Context, id, addressID uuid.UUID) error
	setDefaultFn    func(ctx context.Context, id, addressID uuid.UUID) ([]entities.Address, error)
}

func (s accountServiceStub) GetAccount(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return s.getFn(ctx, id)
}
func (s accountServiceStub) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.Account, error) {
	return s.profileFn(ctx, id, input)
}
func (s accountServiceStub) UpdatePreferences(ctx context.Context, id uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.Account, error) {
	return s.preferencesFn(ctx, id, input)
}
func (s accountServiceStub) ListAddresses(ctx context.Context, id uuid.UUID) ([]entities.Address, error) {
	return s.listAddressesFn(ctx, id)
}
func (s accountServiceStub) AddAddress(ctx context.Context, id uuid.UUID, input *entities.AddressInput) (*entities.Address, error) {
	return s.addAddressFn(ctx, id, input)
}
func (s accountServiceStub) UpdateAddress(ctx context.Context, id, addressID uuid.UUID, input *entities.AddressInput) (*entities.Address, error) {
	return s.updateAddressFn(ctx, id, addressID, input)
}
func (s accountServiceStub) DeleteAddress(ctx context.Context, id, addressID uuid.UUID) error {
	return s.deleteAddressFn(ctx, id, addressID)
}
func (s accountServiceStub) SetDefaultAddress(ctx context.Context, id, addressID uuid.UUID) ([]entities.Address, error) {
	return s.setDefaultFn(ctx, id, addressID)
}

type applicationServiceStub struct {
	submitFn  func(ctx context.Context, accountID uuid.UUID, input *entities.RetailerApplicationInput) (*entities.RetailerApplication, error)
	statusFn  func(ctx context.Context, accountID uuid.UUID) (*entities.RetailerApplication, error)
	approveFn func(ctx context.Context, applicationID, adminID uuid.UUID) (*entities.RetailerApplication, error)
	rejectFn  func(ctx context.Context, applicationID, adminID uuid.UUID, reason string) (*entities.RetailerApplication, error)
}

func (s applicationServiceStub) Submit(ctx context.Context, accountID uuid.UUID, input *entities.RetailerApplicationInput) (*entities.RetailerApplication, error) {
	return s.submitFn(ctx, accountID, input)
}
func (s applicationServiceStub) GetStatus(ctx context.Context, accountID uuid.UUID) (*entities.RetailerApplication, error) {
	return s.statusFn(ctx, accountID)
}
func (s applicationServiceStub) Approve(ctx context.Context, applicationID, adminID uuid.UUID) (*entities.RetailerApplication, error) {
	return s.approveFn(ctx, applicationID, adminID)
}
func (s applicationServiceStub) Reject(ctx context.Context, applicationID, adminID uuid.UUID, reason string) (*entities.RetailerApplication, error) {
	return s.rejectFn(ctx, applicationID, adminID, reason)
}

type adminQueryStub struct {
	listFn   func(ctx context.Context, status string) ([]*entities.ApplicationWithApplicant, error)
	recentFn func(ctx context.Context, limit int) ([]*entities.ApplicationWithApplicant, error)
	statsFn  func(ctx context.Context) (*entities.DashboardStats, error)
}

func (s adminQueryStub) ListApplications(ctx context.Context, status string) ([]*entities.ApplicationWithApplicant, error) {
	return s.listFn(ctx, status)
}
func (s adminQueryStub) ListRecentApplications(ctx context.Context, limit int) ([]*entities.ApplicationWithApplicant, error) {
	return s.recentFn(ctx, limit)
}
func (s adminQueryStub) GetStats(ctx context.Context) (*entities.DashboardStats, error) {
	return s.statsFn(ctx)
}

type productServiceStub struct {
	listFn      func(ctx context.Context, category, search string, pagination utils.PaginationParams) (*usecases.ProductListResult, error)
	getFn       func(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	recommendFn func(ctx context.Context, id uuid.UUID, limit int) ([]*entities.Product, error)
	ownFn       func(ctx context.Context, retailerID uuid.UUID, pagination utils.PaginationParams) (*usecases.ProductListResult, error)
	createFn    func(ctx context.Context, retailerID uuid.UUID, input *entities.ProductInput) (*entities.Product, error)
	updateFn    func(ctx context.Context, retailerID, id uuid.UUID, input *entities.ProductInput) (*entities.Product, error)
	deleteFn    func(ctx context.Context, retailerID, id uuid.UUID) error
}

func (s productServiceStub) ListProducts(ctx context.Context, category, search string, pagination utils.PaginationParams) (*usecases.ProductListResult, error) {
	return s.listFn(ctx, category, search, pagination)
}
func (s productServiceStub) GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return s.getFn(ctx, id)
}
func (s productServiceStub) Recommendations(ctx context.Context, id uuid.UUID, limit int) ([]*entities.Product, error) {
	return s.recommendFn(ctx, id, limit)
}
func (s productServiceStub) ListOwnProducts(ctx context.Context, retailerID uuid.UUID, pagination utils.PaginationParams) (*usecases.ProductListResult, error) {
	return s.ownFn(ctx, retailerID, pagination)
}
func (s productServiceStub) CreateProduct(ctx context.Context, retailerID uuid.UUID, input *entities.ProductInput) (*entities.Product, error) {
	return s.createFn(ctx, retailerID, input)
}
func (s productServiceStub) UpdateProduct(ctx context.Context, retailerID, id uuid.UUID, input *entities.ProductInput) (*entities.Product, error) {
	return s.updateFn(ctx, retailerID, id, input)
}
func (s productServiceStub) DeleteProduct(ctx context.Context, retailerID, id uuid.UUID) error {
	return s.deleteFn(ctx, retailerID, id)
}

type cartServiceStub struct {
	getFn            func(ctx context.Context, accountID uuid.UUID) (*entities.CartView, error)
	addFn            func(ctx context.Context, accountID uuid.UUID, input *entities.CartItemInput) (*entities.CartView, error)
	updateFn         func(ctx context.Context, accountID, productID uuid.UUID, quantity int) (*entities.CartView, error)
	removeFn         func(ctx context.Context, accountID, productID uuid.UUID) (*entities.CartView, error)
	clearFn          func(ctx context.Context, accountID uuid.UUID) error
	wishlistFn       func(ctx context.Context, accountID uuid.UUID) ([]*entities.WishlistEntry, error)
	addWishlistFn    func(ctx context.Context, accountID, productID uuid.UUID) ([]*entities.WishlistEntry, error)
	removeWishlistFn func(ctx context.Context, accountID, productID uuid.UUID) error
}

func (s cartServiceStub) GetCart(ctx context.Context, accountID uuid.UUID) (*entities.CartView, error) {
	return s.getFn(ctx, accountID)
}
func (s cartServiceStub) AddToCart(ctx context.Context, accountID uuid.UUID, input *entities.CartItemInput) (*entities.CartView, error) {
	return s.addFn(ctx, accountID, input)
}
func (s cartServiceStub) UpdateCartItem(ctx context.Context, accountID, productID uuid.UUID, quantity int) (*entities.CartView, error) {
	return s.updateFn(ctx, accountID, productID, quantity)
}
func (s cartServiceStub) RemoveCartItem(ctx context.Context, accountID, productID uuid.UUID) (*entities.CartView, error) {
	return s.removeFn(ctx, accountID, productID)
}
func (s cartServiceStub) ClearCart(ctx context.Context, accountID uuid.UUID) error {
	return s.clearFn(ctx, accountID)
}
func (s cartServiceStub) GetWishlist(ctx context.Context, accountID uuid.UUID) ([]*entities.WishlistEntry, error) {
	return s.wishlistFn(ctx, accountID)
}
func (s cartServiceStub) AddToWishlist(ctx context.Context, accountID, productID uuid.UUID) ([]*entities.WishlistEntry, error) {
	return s.addWishlistFn(ctx, accountID, productID)
}
func (s cartServiceStub) RemoveFromWishlist(ctx context.Context, accountID, productID uuid.UUID) error {
	return s.removeWishlistFn(ctx, accountID, productID)
}

type orderServiceStub struct {
	checkoutFn func(ctx context.Context, accountID uuid.UUID, input *entities.CheckoutInput) (*entities.Order, error)
	listFn     func(ctx context.Context, accountID uuid.UUID, pagination utils.PaginationParams) (*usecases.OrderListResult, error)
	getFn      func(ctx context.Context, accountID, id uuid.UUID) (*entities.Order, error)
}

func (s orderServiceStub) Checkout(ctx context.Context, accountID uuid.UUID, input *entities.CheckoutInput) (*entities.Order, error) {
	return s.checkoutFn(ctx, accountID, input)
}
func (s orderServiceStub) ListOrders(ctx context.Context, accountID uuid.UUID, pagination utils.PaginationParams) (*usecases.OrderListResult, error) {
	return s.listFn(ctx, accountID, pagination)
}
func (s orderServiceStub) GetOrder(ctx context.Context, accountID, id uuid.UUID) (*entities.Order, error) {
	return s.getFn(ctx, accountID, id)
}
