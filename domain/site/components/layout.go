package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
}

const baseStyles = `
body{margin:0;font-family:Inter,system-ui,sans-serif;color:rgba(0,0,0,.85);background:#fafafa}
main{min-height:100dvh;display:flex;flex-direction:column;align-items:center;justify-content:center;padding:2rem 1rem}
.headline{font-size:2.5rem;font-weight:300;letter-spacing:-.04em;text-align:center;margin:0 0 1rem}
.subheader{font-size:1.125rem;color:rgba(0,0,0,.6);text-align:center;margin:0 0 2rem}
.email-form{display:flex;flex-direction:column;gap:.5rem;width:100%;max-width:28rem}
.input-group{display:flex;gap:.5rem}
.email-input{flex:1;padding:.75rem 1rem;border:1px solid #ddd;border-radius:999px}
.submit-button{padding:.75rem 1.25rem;border:0;border-radius:999px;background:#111;color:#fff;cursor:pointer}
.error-message{color:#c0392b;min-height:1.25rem;margin:0}
.dashboard{width:100%;max-width:64rem}
.dashboard table{width:100%;border-collapse:collapse}
.dashboard th,.dashboard td{text-align:left;padding:.5rem;border-bottom:1px solid #eee}
.badge{padding:.125rem .5rem;border-radius:999px;font-size:.75rem;background:#eee}
.terms{max-width:48rem;line-height:1.6}
`

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Viewmark"
	}
	if config.Description == "" {
		config.Description = "Put your brand on viral videos. Real views. Real audiences. Zero wasted ad spend."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				g.El("style", g.Raw(baseStyles)),
			),
			Body(
				Main(g.Group(content)),
			),
		),
	})
}
