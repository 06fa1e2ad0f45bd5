package views

import (
	"net/url"
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/eringen/techreader"
	"github.com/eringen/techreader/strapi"
)

// shareLink is one of the social share targets shown under a post.
type shareLink struct {
	Platform string
	URL      string
}

// ShareLinks returns share URLs for postURL on Twitter, LinkedIn and Facebook.
func ShareLinks(postURL, title string) []shareLink {
	u := url.QueryEscape(postURL)
	return []shareLink{
		{"Twitter", "https://twitter.com/intent/tweet?url=" + u + "&text=" + url.QueryEscape(title)},
		{"LinkedIn", "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{"Facebook", "https://www.facebook.com/sharer/sharer.php?u=" + u},
	}
}

func postPath(p strapi.Post) string {
	return "/blog/" + url.PathEscape(p.Slug) + "/"
}

func readingTime(content string) string {
	n := techreader.ReadingTime(content)
	if n < 1 {
		n = 1
	}
	return strconv.Itoa(n) + " min read"
}

func byline(p strapi.Post) g.Node {
	parts := []g.Node{}
	if p.Author != "" {
		parts = append(parts, Span(g.Text(p.Author)))
	}
	if d := p.Date(); d != "" {
		if len(parts) > 0 {
			parts = append(parts, g.Text(" · "))
		}
		parts = append(parts, g.El("time", g.Attr("datetime", d), g.Text(techreader.FormatDate(d))))
	}
	return P(Class("meta"), g.Group(parts))
}

func csrfField(token string) g.Node {
	return Input(Type("hidden"), Name("_csrf"), Value(token))
}

func errorBox(msg string) g.Node {
	return g.If(msg != "", Div(Class("error"), g.Attr("role", "alert"), g.Text(msg)))
}

func field(label, name, typ, value string, extra ...g.Node) g.Node {
	return Label(g.Text(label),
		Input(append([]g.Node{Type(typ), Name(name), ID(name), Value(value)}, extra...)...),
	)
}
