package errors

import (
	"errors"
)

func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeInvalidRequest:
		return StatusBadRequest
	case ErrorTypeConflict:
		return StatusConflict
	case ErrorTypeRateLimitExceeded:
		return StatusTooManyRequests
	case ErrorTypeRequestTimeout:
		return StatusRequestTimeout
	case ErrorTypeMethodNotAllowed:
		return StatusMethodNotAllowed
	case ErrorTypeUnavailable:
		return StatusServiceUnavailable
	default:
		return StatusInternalServerError
	}
}

// GetHumanReadableMessage returns the AppError message, or fallback for any
// other error so store and driver strings never reach a client.
func GetHumanReadableMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = "An unexpected error occurred"
	}
	if err == nil {
		return fallback
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return fallback
}
