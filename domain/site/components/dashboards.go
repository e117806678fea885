package components

import (
	"fmt"
	"time"

	"github.com/viewmark/viewmark/domain/site/dashboard"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const dateLayout = "Jan 2, 2006"

type ClientDashboardView struct {
	Dashboard *dashboard.ClientDashboard
	// Shown is the filtered and sorted campaign list.
	Shown []dashboard.Campaign
	Query dashboard.CampaignQuery
	Now   time.Time
}

var sortOptions = []struct{ value, label string }{
	{dashboard.SortDateDesc, "Newest first"},
	{dashboard.SortDateAsc, "Oldest first"},
	{dashboard.SortViewsDesc, "Most views"},
	{dashboard.SortViewsAsc, "Fewest views"},
	{dashboard.SortProgressDesc, "Most progress"},
	{dashboard.SortProgressAsc, "Least progress"},
}

func ClientDashboardPage(v ClientDashboardView) g.Node {
	return Layout(
		PageConfig{Title: "Viewmark - Client dashboard"},
		Div(
			Class("dashboard"),
			H1(Class("headline"), g.Text("Campaigns")),
			campaignFilters(v.Query),
			P(ID("campaign-count"),
				g.Textf("Showing %d of %d campaigns", len(v.Shown), len(v.Dashboard.Campaigns)),
			),
			g.If(len(v.Shown) == 0, P(Class("empty"), g.Text("No campaigns match your filters."))),
			g.If(len(v.Shown) > 0, campaignTable(v.Shown)),
			H2(g.Text("Recent videos")),
			clientVideoTable(v.Dashboard.Videos, v.Now),
		),
	)
}

func campaignFilters(q dashboard.CampaignQuery) g.Node {
	return Form(
		Method("get"),
		Action("/platform/client"),
		Input(Type("search"), Name("q"), Value(q.Search), Placeholder("Search campaigns")),
		Select(
			Name("status"),
			option("", "All statuses", q.Status),
			option("Active", "Active", q.Status),
			option("Complete", "Complete", q.Status),
		),
		Select(
			Name("sort"),
			g.Group(g.Map(sortOptions, func(o struct{ value, label string }) g.Node {
				return option(o.value, o.label, q.Sort)
			})),
		),
		Button(Type("submit"), g.Text("Apply")),
	)
}

func option(value, label, current string) g.Node {
	return Option(Value(value), g.If(value == current, g.Attr("selected")), g.Text(label))
}

func campaignTable(campaigns []dashboard.Campaign) g.Node {
	return Table(
		ID("campaigns"),
		THead(Tr(
			Th(g.Text("Campaign")),
			Th(g.Text("Started")),
			Th(g.Text("Views")),
			Th(g.Text("Progress")),
			Th(g.Text("Budget")),
			Th(g.Text("Status")),
		)),
		TBody(g.Group(g.Map(campaigns, func(c dashboard.Campaign) g.Node {
			return Tr(
				Td(Class("campaign-title"), g.Text(c.Title)),
				Td(g.Text(c.StartDate.Format(dateLayout))),
				Td(g.Textf("%s / %s", dashboard.FormatCount(c.CurrentViews), dashboard.FormatCount(c.TargetViews))),
				Td(g.Text(fmt.Sprintf("%.0f%%", c.Progress()*100))),
				Td(g.Text(dashboard.FormatMoney(float64(c.Budget)))),
				Td(Span(Class("badge"), g.Text(c.Status))),
			)
		}))),
	)
}

func clientVideoTable(videos []dashboard.ClientVideo, now time.Time) g.Node {
	return Table(
		ID("client-videos"),
		THead(Tr(
			Th(g.Text("Video")),
			Th(g.Text("Platform")),
			Th(g.Text("Clipper")),
			Th(g.Text("Views")),
			Th(g.Text("Posted")),
		)),
		TBody(g.Group(g.Map(videos, func(v dashboard.ClientVideo) g.Node {
			return Tr(
				Td(A(Href(v.VideoURL), g.Text(v.Title))),
				Td(g.Text(dashboard.DetectPlatform(v.VideoURL))),
				Td(g.Text(v.ClipperName)),
				Td(g.Text(dashboard.FormatCount(v.Views))),
				Td(g.Text(dashboard.RelativeTime(v.PostedDate, now))),
			)
		}))),
	)
}

func ClipperDashboardPage(d *dashboard.ClipperDashboard) g.Node {
	return Layout(
		PageConfig{Title: "Viewmark - Clipper dashboard"},
		Div(
			Class("dashboard"),
			H1(Class("headline"), g.Text("Your clips")),
			Div(
				ID("clipper-totals"),
				P(Strong(g.Text("Total earnings: ")), g.Text(dashboard.FormatMoney(d.TotalEarnings()))),
				P(Strong(g.Text("Total views: ")), g.Text(dashboard.FormatCount(d.TotalViews()))),
			),
			H2(g.Text("Assigned campaigns")),
			Ul(g.Group(g.Map(d.AssignedCampaigns, func(a dashboard.Assignment) g.Node {
				return Li(
					g.Text(a.Title),
					g.Textf(" (due %s) ", a.Deadline.Format(dateLayout)),
					Span(Class("badge"), g.Text(a.Status)),
				)
			}))),
			H2(g.Text("Submitted videos")),
			Table(
				ID("clipper-videos"),
				THead(Tr(
					Th(g.Text("Video")),
					Th(g.Text("Status")),
					Th(g.Text("Views")),
					Th(g.Text("Earned")),
					Th(g.Text("Payout window")),
				)),
				TBody(g.Group(g.Map(d.Videos, func(v dashboard.ClipperVideo) g.Node {
					return Tr(
						Td(A(Href(v.URL), g.Text(v.Title))),
						Td(Span(Class("badge"), g.Text(v.Status))),
						Td(g.Text(dashboard.FormatCount(v.Views))),
						Td(g.Text(dashboard.FormatMoney(v.Earnings))),
						Td(g.Text(payoutWindow(v))),
					)
				}))),
			),
		),
	)
}

func payoutWindow(v dashboard.ClipperVideo) string {
	if v.DaysRemaining == nil || v.PayoutEndDate == nil {
		return "Not started"
	}
	return fmt.Sprintf("%d days left (ends %s)", *v.DaysRemaining, v.PayoutEndDate.Format(dateLayout))
}
