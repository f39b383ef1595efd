package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApplicationStatus represents the review status of a retailer application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsValid reports whether s is a known status
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// BusinessCategory is the closed set of retailer and product categories
type BusinessCategory string

const (
	CategoryElectronics    BusinessCategory = "Electronics"
	CategoryFashion        BusinessCategory = "Fashion"
	CategoryHomeGarden     BusinessCategory = "Home & Garden"
	CategoryHealthBeauty   BusinessCategory = "Health & Beauty"
	CategorySportsOutdoors BusinessCategory = "Sports & Outdoors"
	CategoryToysGames      BusinessCategory = "Toys & Games"
	CategoryBooksMedia     BusinessCategory = "Books & Media"
	CategoryFoodGrocery    BusinessCategory = "Food & Grocery"
	CategoryAutomotive     BusinessCategory = "Automotive"
	CategoryOther          BusinessCategory = "Other"
)

// BusinessCategories lists every accepted category
var BusinessCategories = []BusinessCategory{
	CategoryElectronics,
	CategoryFashion,
	CategoryHomeGarden,
	CategoryHealthBeauty,
	CategorySportsOutdoors,
	CategoryToysGames,
	CategoryBooksMedia,
	CategoryFoodGrocery,
	CategoryAutomotive,
	CategoryOther,
}

// IsValid reports whether c belongs to the category enum
func (c BusinessCategory) IsValid() bool {
	for _, known := range BusinessCategories {
		if c == known {
			return true
		}
	}
	return false
}

// RetailerApplication is a request by an account to become a retailer
type RetailerApplication struct {
	ID                  uuid.UUID         `json:"id"`
	AccountID           uuid.UUID         `json:"accountId"`
	Status              ApplicationStatus `json:"status"`
	BusinessName        string            `json:"businessName"`
	BusinessDescription string            `json:"businessDescription"`
	BusinessCategory    BusinessCategory  `json:"businessCategory"`
	ReviewedBy          uuid.NullUUID     `json:"reviewedBy"`
	ReviewedAt          null.Time         `json:"reviewedAt"`
	RejectionReason     string            `json:"rejectionReason"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// IsPending reports whether the application still awaits a decision
func (a *RetailerApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// Approve records an approval decision
func (a *RetailerApplication) Approve(adminID uuid.UUID, at time.Time) {
	a.decide(ApplicationStatusApproved, adminID, at, "")
}

// Reject records a rejection decision with its reason
func (a *RetailerApplication) Reject(adminID uuid.UUID, at time.Time, reason string) {
	a.decide(ApplicationStatusRejected, adminID, at, reason)
}

func (a *RetailerApplication) decide(status ApplicationStatus, adminID uuid.UUID, at time.Time, reason string) {
	a.Status = status
	a.ReviewedBy = uuid.NullUUID{UUID: adminID, Valid: true}
	a.ReviewedAt = null.TimeFrom(at)
	a.RejectionReason = reason
	a.UpdatedAt = at
}

// RetailerApplicationInput represents input for submitting an application.
// Fields are validated by the workflow, after its state checks.
type RetailerApplicationInput struct {
	BusinessName        string `json:"businessName"`
	BusinessDescription string `json:"businessDescription"`
	BusinessCategory    string `json:"businessCategory"`
}

// RejectApplicationInput represents the body of a rejection
type RejectApplicationInput struct {
	RejectionReason string `json:"rejectionReason"`
}

// ApplicantSummary is the account data shown next to an application
type ApplicantSummary struct {
	ID        uuid.UUID          `json:"id"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
	AvatarURL string             `json:"avatarUrl"`
	Role      AccountRole        `json:"role"`
	Status    VerificationStatus `json:"verificationStatus"`
}

// ApplicationWithApplicant joins an application with its submitting account
type ApplicationWithApplicant struct {
	*RetailerApplication
	Applicant *ApplicantSummary `json:"applicant"`
}

// DashboardStats are the admin dashboard counters. Each count is read
// independently.
type DashboardStats struct {
	TotalAccounts       int64 `json:"totalAccounts"`
	TotalRetailers      int64 `json:"totalRetailers"`
	PendingApplications int64 `json:"pendingApplications"`
	TotalApplications   int64 `json:"totalApplications"`
}
