// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"
	KeyAuthResetEmailSent     = "auth.reset_email_sent"
	KeyAuthResetSuccess       = "auth.reset_success"
	KeyAuthResetTokenInvalid  = "auth.reset_token_invalid"

	// User management
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserSuspended      = "user.suspended"
	KeyUserDeleted        = "user.deleted"

	// Properties
	KeyPropertyCreated     = "property.created"
	KeyPropertyUpdated     = "property.updated"
	KeyPropertyDeleted     = "property.deleted"
	KeyPropertyNotFound    = "property.not_found"
	KeyPropertyFeaturedCap = "property.featured_cap"
	KeyPropertyBadPrice    = "property.invalid_price"

	// Images
	KeyImageAttached = "image.attached"
	KeyImageDetached = "image.detached"
	KeyImageNotFound = "image.not_found"
	KeyImageInvalid  = "image.invalid"

	// Pages
	KeyPageCreated  = "page.created"
	KeyPageUpdated  = "page.updated"
	KeyPageDeleted  = "page.deleted"
	KeyPageNotFound = "page.not_found"

	// Engagement
	KeyInquirySubmitted    = "inquiry.submitted"
	KeyInquiryNotFound     = "inquiry.not_found"
	KeyReviewSubmitted     = "review.submitted"
	KeyReviewNotFound      = "review.not_found"
	KeyAppointmentBooked   = "appointment.booked"
	KeyAppointmentNotFound = "appointment.not_found"
	KeyViewingBooked       = "viewing.booked"
	KeyViewingNotFound     = "viewing.not_found"
	KeyFavoriteSaved       = "favorite.saved"
	KeyFavoriteRemoved     = "favorite.removed"
	KeyFavoriteNotFound    = "favorite.not_found"

	// Blog
	KeyBlogPostCreated  = "blog.created"
	KeyBlogPostNotFound = "blog.not_found"

	// Workflow
	KeyStatusTransitionInvalid = "workflow.invalid_transition"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// System
	KeyRateLimitExceeded = "system.rate_limit_exceeded"
	KeyInternalError     = "system.internal_error"
	KeyMaintenanceMode   = "system.maintenance"
)
