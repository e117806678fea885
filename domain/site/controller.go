// Package site serves the server-rendered pages: the landing page with a
// no-JS waitlist form, completion, terms, and the demo dashboards.
package site

import (
	"net/http"

	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/domain/site/components"
	"github.com/viewmark/viewmark/domain/site/dashboard"
	"github.com/viewmark/viewmark/domain/waitlist"
	"github.com/viewmark/viewmark/pkg/clock"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	g "maragu.dev/gomponents"
)

type siteController struct {
	waitlist  waitlist.WaitlistService
	dashboard dashboard.DashboardProvider
	clock     clock.Clock
}

// NewSiteController mounts the pages at the root. joinLimiter applies to
// POST /join; nil uses the router default.
func NewSiteController(
	service waitlist.WaitlistService,
	provider dashboard.DashboardProvider,
	clk clock.Clock,
	joinLimiter ratelimit.RateLimiter,
) *router.RESTController {
	if clk == nil {
		clk = clock.Real()
	}
	sc := &siteController{waitlist: service, dashboard: provider, clock: clk}

	return router.NewRESTController(
		"SiteController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPageHandler(c, nil, http.MethodGet, "", sc.landing)
			rs.AddPageHandler(c, joinLimiter, http.MethodPost, "join", sc.join)
			rs.AddPageHandler(c, nil, http.MethodGet, "completion", sc.completion)
			rs.AddPageHandler(c, nil, http.MethodGet, "terms", sc.terms)
			rs.AddPageHandler(c, nil, http.MethodGet, "platform/client", sc.clientDashboard)
			rs.AddPageHandler(c, nil, http.MethodGet, "platform/clipper", sc.clipperDashboard)
		},
	)
}

func render(ctx *router.RequestContext, status int, page g.Node) {
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(status)
	if err := page.Render(ctx.Writer); err != nil {
		router.GetLogger(ctx).Error("Failed to render page", "path", ctx.Request.URL.Path, "error", err)
	}
}

func (sc *siteController) landing(ctx *router.RequestContext) {
	render(ctx, http.StatusOK, components.LandingPage(components.LandingState{}))
}

// join is the form fallback for browsers without JavaScript. Success
// redirects to /completion; failures re-render the form with the message.
func (sc *siteController) join(ctx *router.RequestContext) {
	logger := router.GetLogger(ctx)
	email := ctx.PostForm("email")

	err := sc.waitlist.Submit(ctx.Request.Context(), email)
	if err == nil {
		ctx.Redirect(http.StatusSeeOther, "/completion")
		return
	}

	logger.Info("Waitlist form rejected", "error", err)
	render(ctx, apperrors.HTTPStatusCode(err), components.LandingPage(components.LandingState{
		Email: email,
		Error: apperrors.GetHumanReadableMessage(err, waitlist.ErrInternal.Message),
	}))
}

func (sc *siteController) completion(ctx *router.RequestContext) {
	render(ctx, http.StatusOK, components.CompletionPage())
}

func (sc *siteController) terms(ctx *router.RequestContext) {
	render(ctx, http.StatusOK, components.TermsPage())
}

func (sc *siteController) clientDashboard(ctx *router.RequestContext) {
	d, err := sc.dashboard.ClientDashboard(ctx.Request.Context())
	if err != nil {
		sc.dashboardUnavailable(ctx, err)
		return
	}

	query := dashboard.CampaignQuery{
		Search: ctx.Query("q"),
		Status: ctx.Query("status"),
		Sort:   ctx.DefaultQuery("sort", dashboard.SortDateDesc),
	}

	render(ctx, http.StatusOK, components.ClientDashboardPage(components.ClientDashboardView{
		Dashboard: d,
		Shown:     dashboard.FilterCampaigns(d.Campaigns, query),
		Query:     query,
		Now:       sc.clock.Now(),
	}))
}

func (sc *siteController) clipperDashboard(ctx *router.RequestContext) {
	d, err := sc.dashboard.ClipperDashboard(ctx.Request.Context())
	if err != nil {
		sc.dashboardUnavailable(ctx, err)
		return
	}
	render(ctx, http.StatusOK, components.ClipperDashboardPage(d))
}

func (sc *siteController) dashboardUnavailable(ctx *router.RequestContext, err error) {
	router.GetLogger(ctx).Error("Dashboard provider failed", "error", err)
	ctx.String(http.StatusServiceUnavailable, "Dashboard unavailable")
}
