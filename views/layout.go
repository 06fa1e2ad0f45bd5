package views

import (
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/eringen/techreader"
)

type navItem struct {
	Href, Label string
}

var navItems = []navItem{
	{"/", "Home"},
	{"/categories/", "Categories"},
	{"/about/", "About"},
	{"/contact/", "Contact"},
	{"/admin/create-post/", "Create Post"},
}

func (v *views) layout(meta techreader.PageMeta, active string, children ...g.Node) g.Node {
	title := meta.Title
	if title == "" {
		title = v.site.Name
	}
	return Doctype(
		HTML(Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(title)),
				g.If(meta.Description != "", Meta(Name("description"), Content(meta.Description))),
				g.If(meta.URL != "", Link(Rel("canonical"), Href(meta.URL))),
				openGraph(v.site.Name, title, meta),
				Link(Rel("icon"), Type("image/svg+xml"), Href("/favicon.svg")),
				Link(Rel("alternate"), Type("application/rss+xml"), g.Attr("title", v.site.Name), Href("/feed.xml")),
				Link(Rel("stylesheet"), Href("/public/style.css")),
				g.If(meta.JSONLD != "", Script(Type("application/ld+json"), g.Raw(meta.JSONLD))),
				Script(Src("/public/app.js"), Defer()),
			),
			Body(
				v.header(active),
				Main(
					Div(Class("container"),
						flashes(meta.Flash),
						g.Group(children),
					),
				),
				v.footer(),
			),
		),
	)
}

func openGraph(siteName, title string, meta techreader.PageMeta) g.Node {
	prop := func(name, value string) g.Node {
		return g.If(value != "", Meta(g.Attr("property", name), Content(value)))
	}
	card := "summary"
	if meta.Image != "" {
		card = "summary_large_image"
	}
	return g.Group([]g.Node{
		prop("og:site_name", siteName),
		prop("og:title", title),
		prop("og:description", meta.Description),
		prop("og:url", meta.URL),
		prop("og:type", meta.OGType),
		prop("og:image", meta.Image),
		Meta(Name("twitter:card"), Content(card)),
	})
}

func (v *views) header(active string) g.Node {
	links := make([]g.Node, 0, len(navItems))
	for _, item := range navItems {
		attrs := []g.Node{Href(item.Href), g.Text(item.Label)}
		if item.Href == active {
			attrs = append(attrs, Class("active"), g.Attr("aria-current", "page"))
		}
		links = append(links, A(attrs...))
	}
	return Header(Class("site-header"),
		Div(Class("container"),
			A(Class("brand"), Href("/"), g.Attr("aria-label", v.site.Name+" Home"), g.Text(v.site.Name)),
			Nav(Class("nav"), g.Group(links)),
		),
	)
}

func (v *views) footer() g.Node {
	return Footer(Class("site-footer"),
		Div(Class("container"),
			P(g.Textf("© %d %s. All rights reserved.", time.Now().Year(), v.site.Name)),
			P(
				A(Href("/feed.xml"), g.Text("RSS")),
				g.Text(" · "),
				A(Href("/sitemap.xml"), g.Text("Sitemap")),
			),
		),
	)
}

func flashes(msgs []string) g.Node {
	nodes := make([]g.Node, 0, len(msgs))
	for _, m := range msgs {
		nodes = append(nodes, Div(Class("flash"), g.Attr("role", "status"), g.Text(m)))
	}
	return g.Group(nodes)
}

func newsletterBox() g.Node {
	return Section(Class("newsletter"),
		H2(g.Text("Stay in the loop")),
		P(g.Text("Get the latest articles delivered to your inbox.")),
		Form(g.Attr("data-newsletter"), Action("/api/newsletter"), Method("post"),
			Input(Type("email"), Name("email"), Placeholder("you@example.com"), g.Attr("aria-label", "Email address"), Required()),
			Button(Type("submit"), g.Text("Subscribe")),
		),
		P(Class("hint"), g.Attr("data-status"), g.Attr("aria-live", "polite")),
	)
}
