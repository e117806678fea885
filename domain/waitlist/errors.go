package waitlist

import apperrors "github.com/viewmark/viewmark/pkg/errors"

// Sentinel errors for the waitlist domain. Their messages are the exact
// strings returned to clients.
var (
	ErrEmailRequired          = apperrors.NewInvalidRequestError("Email is required", nil)
	ErrInvalidEmailFormat     = apperrors.NewInvalidRequestError("Invalid email format", nil)
	ErrEmailAlreadyRegistered = apperrors.NewConflictError("This email is already on the waitlist!", nil)
	ErrSaveFailed             = apperrors.NewDatabaseError("Failed to save email", nil)
	ErrInternal               = apperrors.NewInternalServerError("Internal server error", nil)
)
