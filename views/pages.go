package views

import (
	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/eringen/techreader"
	"github.com/eringen/techreader/markdown"
	"github.com/eringen/techreader/strapi"
)

func (v *views) home(posts []strapi.Post, meta techreader.PageMeta) templ.Component {
	var feed g.Node
	if len(posts) == 0 {
		feed = Div(Class("empty"),
			H2(g.Text("No posts yet")),
			P(g.Text("Check back soon for new articles.")),
			A(Class("button"), Href("/admin/create-post/"), g.Text("Write the first post")),
		)
	} else {
		cards := make([]g.Node, 0, len(posts))
		for _, p := range posts {
			cards = append(cards, v.postCard(p))
		}
		feed = Div(Class("grid"), g.Group(cards))
	}

	return component(v.layout(meta, "/",
		Section(Class("hero"),
			H1(g.Text(v.site.Name)),
			P(g.Text(v.site.Description)),
		),
		H2(g.Text("Latest Articles")),
		feed,
		newsletterBox(),
	))
}

func (v *views) postCard(p strapi.Post) g.Node {
	return Article(Class("card"),
		g.If(p.CoverURL() != "",
			A(Href(postPath(p)),
				Img(Src(techreader.MediaURL(v.site.MediaBase, p.CoverURL())), Alt(p.CoverAlt()), g.Attr("loading", "lazy")),
			),
		),
		Div(Class("card-body"),
			H3(A(Href(postPath(p)), g.Text(p.Title))),
			byline(p),
			P(g.Text(techreader.Truncate(techreader.Excerpt(p.Content), 150))),
			P(Class("meta"), g.Text(readingTime(p.Content))),
		),
	)
}

func (v *views) post(p strapi.Post, more []strapi.Post, meta techreader.PageMeta) templ.Component {
	body, err := markdown.ToHTML(p.Content)
	var content g.Node
	if err != nil {
		paras := markdown.Paragraphs(p.Content)
		nodes := make([]g.Node, 0, len(paras))
		for _, para := range paras {
			nodes = append(nodes, P(g.Text(para)))
		}
		content = g.Group(nodes)
	} else {
		content = g.Raw(body)
	}

	shares := []g.Node{Strong(g.Text("Share this article: "))}
	for _, s := range ShareLinks(meta.URL, p.Title) {
		shares = append(shares, A(Href(s.URL), g.Attr("target", "_blank"), Rel("noopener noreferrer"),
			g.Attr("aria-label", "Share on "+s.Platform), g.Text(s.Platform)))
	}

	var related g.Node
	if len(more) > 0 {
		cards := make([]g.Node, 0, len(more))
		for _, m := range more {
			cards = append(cards, v.postCard(m))
		}
		related = Section(H2(g.Text("More articles")), Div(Class("grid"), g.Group(cards)))
	}

	return component(v.layout(meta, "",
		Article(Class("narrow"),
			Header(Class("post-header"),
				P(A(Href("/"), g.Text("← Back to articles"))),
				H1(g.Text(p.Title)),
				byline(p),
				P(Class("meta"), g.Text(readingTime(p.Content))),
			),
			g.If(p.CoverURL() != "",
				Img(Class("post-cover"), Src(techreader.MediaURL(v.site.MediaBase, p.CoverURL())), Alt(p.CoverAlt())),
			),
			Div(Class("prose"), content),
			Div(Class("share"), g.Group(shares)),
			g.If(p.UpdatedAt != "", P(Class("meta"), g.Text("Last updated: "+techreader.FormatDate(p.UpdatedAt)))),
		),
		g.If(related != nil, related),
		newsletterBox(),
	))
}

func (v *views) categories(cats []strapi.Category, meta techreader.PageMeta) templ.Component {
	var list g.Node
	if len(cats) == 0 {
		list = Div(Class("empty"), P(g.Text("No categories yet.")))
	} else {
		cards := make([]g.Node, 0, len(cats))
		for _, c := range cats {
			cards = append(cards, Article(Class("card"),
				Div(Class("card-body"),
					H3(g.Text(c.Name)),
					g.If(c.Description != "", P(g.Text(c.Description))),
				),
			))
		}
		list = Div(Class("grid"), g.Group(cards))
	}
	return component(v.layout(meta, "/categories/",
		H1(g.Text("Categories")),
		P(Class("meta"), g.Text("Browse articles by technology categories and topics.")),
		list,
	))
}

func (v *views) about(meta techreader.PageMeta) templ.Component {
	return component(v.layout(meta, "/about/",
		Article(Class("narrow prose"),
			H1(g.Text("About "+v.site.Name)),
			P(g.Text(v.site.Description)),
			P(g.Text("We write about software engineering, artificial intelligence, data, and the tools that shape how technology gets built. Every article is written by practitioners for practitioners.")),
			g.If(v.site.Author != "", P(g.Text("Edited by "+v.site.Author+"."))),
			P(g.Text("Have an idea or feedback? "), A(Href("/contact/"), g.Text("Get in touch")), g.Text(".")),
		),
	))
}

func (v *views) notFound() templ.Component {
	return component(v.layout(techreader.PageMeta{Title: "Page not found | " + v.site.Name}, "",
		Div(Class("empty"),
			H1(g.Text("404")),
			P(g.Text("The page you are looking for does not exist.")),
			A(Class("button"), Href("/"), g.Text("Back to home")),
		),
	))
}

func (v *views) serverError() templ.Component {
	return component(v.layout(techreader.PageMeta{Title: "Error | " + v.site.Name}, "",
		Div(Class("empty"),
			H1(g.Text("Something went wrong")),
			P(g.Text("We could not load this page. Please try again in a moment.")),
			A(Class("button"), Href("/"), g.Text("Back to home")),
		),
	))
}
