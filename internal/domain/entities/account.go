package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AccountRole represents account roles
type AccountRole string

const (
	AccountRoleBuyer    AccountRole = "buyer"
	AccountRoleRetailer AccountRole = "retailer"
	AccountRoleAdmin    AccountRole = "admin"
)

// VerificationStatus tracks where an account stands in the retailer approval process
type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Verification is the account-level retailer verification record
type Verification struct {
	Status     VerificationStatus `json:"status"`
	AppliedAt  null.Time          `json:"appliedAt"`
	VerifiedAt null.Time          `json:"verifiedAt"`
	VerifiedBy uuid.NullUUID      `json:"verifiedBy"`
}

// Preferences holds notification and locale preferences
type Preferences struct {
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
	MarketingEmails    bool   `json:"marketingEmails"`
	Currency           string `json:"currency"`
	Language           string `json:"language"`
}

// DefaultPreferences returns the preferences given to new accounts
func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: true,
		Currency:           "USD",
		Language:           "en",
	}
}

// Account represents an end user of the storefront
type Account struct {
	ID           uuid.UUID      `json:"id"`
	ExternalID   string         `json:"externalId"`
	Email        string         `json:"email"`
	Role         AccountRole    `json:"role"`
	Name         string         `json:"name"`
	AvatarURL    string         `json:"avatarUrl"`
	Phone        string         `json:"phone"`
	Addresses    []Address      `json:"addresses"`
	Preferences  Preferences    `json:"preferences"`
	Verification Verification   `json:"verification"`
	Cart         []CartItem     `json:"-"`
	Wishlist     []WishlistItem `json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// IsAdmin reports whether the account has the admin role
func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}

// IsRetailer reports whether the account has the retailer role
func (a *Account) IsRetailer() bool {
	return a.Role == AccountRoleRetailer
}

// MarkVerificationPending records a new retailer application
func (a *Account) MarkVerificationPending(at time.Time) {
	a.Verification.Status = VerificationPending
	a.Verification.AppliedAt = null.TimeFrom(at)
}

// ApproveRetailer records an admin approval. Only buyers are promoted; the
// role is never lowered.
func (a *Account) ApproveRetailer(adminID uuid.UUID, at time.Time) {
	if a.Role == AccountRoleBuyer {
		a.Role = AccountRoleRetailer
	}
	a.Verification.Status = VerificationApproved
	a.Verification.VerifiedAt = null.TimeFrom(at)
	a.Verification.VerifiedBy = uuid.NullUUID{UUID: adminID, Valid: true}
}

// RejectRetailer records an admin rejection. Role is left unchanged.
func (a *Account) RejectRetailer(adminID uuid.UUID, at time.Time) {
	a.Verification.Status = VerificationRejected
	a.Verification.VerifiedAt = null.TimeFrom(at)
	a.Verification.VerifiedBy = uuid.NullUUID{UUID: adminID, Valid: true}
}

// Identity is the caller as asserted by the identity provider
type Identity struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// UpdateProfileInput represents input for updating an account profile
type UpdateProfileInput struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url,max=500"`
	Phone     string `json:"phone" binding:"omitempty,e164"`
}

// UpdatePreferencesInput represents input for updating preferences
type UpdatePreferencesInput struct {
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
	MarketingEmails    bool   `json:"marketingEmails"`
	Currency           string `json:"currency" binding:"omitempty,len=3,uppercase"`
	Language           string `json:"language" binding:"omitempty,min=2,max=10"`
}
