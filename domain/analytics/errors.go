package analytics

import apperrors "github.com/viewmark/viewmark/pkg/errors"

var (
	ErrInteractionTypeRequired = apperrors.NewInvalidRequestError("interactionType is required", nil)
	ErrTrackPageViewFailed     = apperrors.NewDatabaseError("Failed to track page view", nil)
	ErrTrackInteractionFailed  = apperrors.NewDatabaseError("Failed to track interaction", nil)
	ErrInternal                = apperrors.NewInternalServerError("Internal server error", nil)
)
