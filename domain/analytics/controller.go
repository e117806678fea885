package analytics

import (
	"net/http"

	"github.com/viewmark/viewmark/config/router"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"github.com/viewmark/viewmark/pkg/ratelimit"
)

// NewAnalyticsController mounts the tracking endpoints under /api.
func NewAnalyticsController(service AnalyticsService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewRESTController(
		"AnalyticsController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, limiter, "/track-pageview", trackPageViewHandler(service))
			rs.AddPostHandler(c, limiter, "/track-interaction", trackInteractionHandler(service))
		},
	)
}

func trackPageViewHandler(service AnalyticsService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req TrackPageViewRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to parse track-pageview body", "error", err)
			return router.ErrorBody(http.StatusInternalServerError, ErrInternal.Message)
		}

		err := service.TrackPageView(ctx.Request.Context(), PageView{
			PagePath:  req.PagePath,
			UserAgent: req.UserAgent,
			Referrer:  req.Referrer,
			SessionID: req.SessionID,
			IPAddress: ClientIP(ctx),
		})
		if err != nil {
			return errorResult(err)
		}

		return router.RawResult(http.StatusOK, TrackResponse{Success: true})
	}
}

func trackInteractionHandler(service AnalyticsService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req TrackInteractionRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to parse track-interaction body", "error", err)
			return router.ErrorBody(http.StatusInternalServerError, ErrInternal.Message)
		}

		interaction := Interaction{
			Type: req.InteractionType,
			View: PageView{
				PagePath:  req.PagePath,
				UserAgent: req.UserAgent,
				Referrer:  req.Referrer,
				SessionID: req.SessionID,
				IPAddress: ClientIP(ctx),
			},
		}
		if req.Email != nil {
			interaction.Email = *req.Email
		}

		if err := service.TrackInteraction(ctx.Request.Context(), interaction); err != nil {
			return errorResult(err)
		}

		return router.RawResult(http.StatusOK, TrackResponse{Success: true})
	}
}

func errorResult(err error) *router.ServiceResult {
	return router.ErrorBody(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err, ErrInternal.Message),
	)
}
