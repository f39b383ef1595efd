package usecases

// Retailer application field limits, counted in characters after trimming
const (
	BusinessNameMinLength        = 2
	BusinessNameMaxLength        = 100
	BusinessDescriptionMinLength = 20
	BusinessDescriptionMaxLength = 2000
	RejectionReasonMaxLength     = 500
)

// Dashboard and catalog defaults
const (
	RecentApplicationsLimit    = 5
	DefaultRecommendationLimit = 4
	MaxRecommendationLimit     = 20
)
