package waitlist

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin/binding"
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"github.com/viewmark/viewmark/pkg/ratelimit"
)

// NewWaitlistController mounts POST /api/submit-email. limiter may be nil to
// use the router default.
func NewWaitlistController(service WaitlistService, limiter ratelimit.RateLimiter) *router.RESTController {
	RegisterValidations()

	return router.NewRESTController(
		"WaitlistController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, limiter, "/submit-email", submitEmailHandler(service))
		},
	)
}

func submitEmailHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		body, err := ctx.GetRawData()
		if err != nil {
			logger.Error("Failed to read submit-email body", "error", err)
			return router.ErrorBody(http.StatusInternalServerError, ErrInternal.Message)
		}

		var req SubmitEmailRequest
		if err := binding.JSON.BindBody(body, &req); err != nil {
			return bindErrorResult(logger, err, body, &req)
		}

		if err := service.Submit(ctx.Request.Context(), req.Email); err != nil {
			return router.ErrorBody(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err, ErrInternal.Message),
			)
		}

		return router.RawResult(http.StatusOK, SubmitEmailResponse{
			Success: true,
			Message: submitSuccessMessage,
		})
	}
}

// bindErrorResult maps binding failures onto the endpoint's error strings.
// A body that is not JSON at all is an internal error, not a validation one.
func bindErrorResult(logger *log.Logger, err error, body []byte, req *SubmitEmailRequest) *router.ServiceResult {
	validationErrors := apperrors.FormatValidationErrors(err, req)
	if len(validationErrors) == 0 {
		logger.Error("Failed to parse submit-email body", "error", err)
		return router.ErrorBody(http.StatusInternalServerError, ErrInternal.Message)
	}

	logger.Info("Rejected submit-email request", "field", validationErrors[0].Field, "tag", validationErrors[0].Tag)

	if validationErrors[0].Tag == "required" || (validationErrors[0].Tag == "type" && emailIsFalsy(body)) {
		return router.ErrorBody(http.StatusBadRequest, ErrEmailRequired.Message)
	}
	return router.ErrorBody(http.StatusBadRequest, ErrInvalidEmailFormat.Message)
}

// emailIsFalsy reports whether the body carries no usable email value:
// false, 0 or null under "email", or a top-level array with no "email" key
// at all. Other wrong types such as true or 42 are a format problem.
func emailIsFalsy(body []byte) bool {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}

	switch top := payload.(type) {
	case []any:
		return true
	case map[string]any:
		switch v := top["email"].(type) {
		case nil:
			return true
		case bool:
			return !v
		case float64:
			return v == 0
		case string:
			return v == ""
		}
	}
	return false
}
