package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type termsSection struct {
	heading string
	body    string
}

var termsSections = []termsSection{
	{"1. Age and Eligibility", "You must be at least 18 years old, or the age of majority where you live, to use Viewmark."},
	{"2. Age and Eligibility Requirements", "By creating an account you confirm that you meet these requirements and that the information you provide is accurate."},
	{"3. Account Creation and Security", "You are responsible for keeping your credentials confidential and for all activity under your account."},
	{"4. Use of the Services and Content", "Clippers may only submit content they have the right to publish. Brands may only run campaigns for products they own or represent."},
	{"5. Privacy", "We collect the information needed to run the service, including email addresses and page-view analytics."},
	{"6. Communications", "By joining the waitlist you agree to receive product updates by email. You may unsubscribe at any time."},
	{"7. Payments and Compensation", "Payouts are calculated from verified views during a campaign's payout window at the published rate per thousand views."},
	{"8. Prohibited Conduct", "Artificial inflation of views, impersonation and misleading content are grounds for removal and forfeiture of payouts."},
	{"9. Disclaimer of Warranties", "The services are provided as is, without warranties of any kind."},
	{"10. Limitation of Liability", "To the extent permitted by law, Viewmark is not liable for indirect or consequential damages."},
	{"11. Indemnification", "You agree to indemnify Viewmark against claims arising from content you submit or campaigns you run."},
	{"12. Termination", "We may suspend or terminate accounts that violate these terms."},
	{"13. Dispute Resolution", "Disputes are first handled informally by contacting us, then by binding arbitration where permitted."},
	{"14. General Provisions", "These terms are the entire agreement between you and Viewmark regarding the services."},
	{"Contact Us", "Questions about these terms can be sent to legal@viewmark.app."},
}

func TermsPage() g.Node {
	return Layout(
		PageConfig{Title: "Viewmark - Terms of Use"},
		Div(
			Class("terms"),
			H1(Class("headline"), g.Text("Terms of Use & Acceptable Conduct")),
			g.Group(g.Map(termsSections, func(s termsSection) g.Node {
				return g.Group([]g.Node{
					H2(g.Text(s.heading)),
					P(g.Text(s.body)),
				})
			})),
		),
	)
}
