package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LandingState is what the no-JS landing form re-renders with.
type LandingState struct {
	Email string
	Error string
}

func LandingPage(state LandingState) g.Node {
	return Layout(
		PageConfig{Title: "Viewmark - Put your brand on viral videos"},
		H1(Class("headline"), g.Text("Put your brand on viral videos")),
		P(Class("subheader"), g.Text("Real views. Real audiences. Zero wasted ad spend.")),
		waitlistForm(state),
	)
}

func waitlistForm(state LandingState) g.Node {
	return Form(
		Class("email-form"),
		Method("post"),
		Action("/join"),
		g.Attr("novalidate"),
		Div(
			Class("input-group"),
			Input(
				Type("email"),
				Name("email"),
				ID("email"),
				Value(state.Email),
				Placeholder("your@email.com"),
				Class("email-input"),
				g.Attr("aria-label", "Work email address"),
				g.Attr("autocomplete", "email"),
				g.Attr("inputmode", "email"),
			),
			Button(Type("submit"), Class("submit-button"), g.Text("Join Waitlist")),
		),
		P(Class("error-message"), g.Attr("role", "alert"), g.Text(state.Error)),
	)
}

func CompletionPage() g.Node {
	return Layout(
		PageConfig{Title: "Viewmark - Thanks for signing up"},
		H1(Class("headline"), g.Text("Thanks for signing up!")),
		P(Class("subheader"),
			g.Text("Viewmark is currently full. You'll hear from us as soon as we're ready to let more people in."),
		),
	)
}
