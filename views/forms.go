package views

import (
	"strconv"

	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/eringen/techreader"
)

func (v *views) contact(form techreader.ContactForm, meta techreader.PageMeta) templ.Component {
	f := form.Values
	return component(v.layout(meta, "/contact/",
		Section(Class("narrow"),
			H1(g.Text("Contact Us")),
			P(Class("meta"), g.Text("Have a question, a story tip, or feedback? Send us a message.")),
			errorBox(form.Error),
			Form(Class("stack"), Method("post"), Action("/contact/"),
				csrfField(meta.CSRFToken),
				Div(Class("row"),
					field("First name", "firstName", "text", f.FirstName, Required()),
					field("Last name", "lastName", "text", f.LastName, Required()),
				),
				field("Email", "email", "email", f.Email, Required()),
				field("Subject", "subject", "text", f.Subject, Required()),
				Label(g.Text("Message"),
					Textarea(Name("message"), ID("message"), g.Attr("rows", "6"), Required(), g.Text(f.Message)),
				),
				Button(Type("submit"), g.Text("Send Message")),
			),
		),
	))
}

func (v *views) createPost(form techreader.PostForm, meta techreader.PageMeta) templ.Component {
	return component(v.layout(meta, "/admin/create-post/",
		Section(Class("narrow"),
			H1(g.Text("Create New Post")),
			errorBox(form.Error),
			Form(Class("stack"), Method("post"), Action("/admin/create-post/"), g.Attr("enctype", "multipart/form-data"),
				csrfField(meta.CSRFToken),
				field("Title", "title", "text", form.Title, Required()),
				Label(g.Text("Slug "),
					Span(Class("hint"), g.Text("lowercase letters, numbers and hyphens; leave empty to derive from the title")),
					Input(Type("text"), Name("slug"), ID("slug"), Value(form.Slug), g.Attr("pattern", "[a-z0-9-]+")),
				),
				Div(Class("row"),
					field("Author", "author", "text", form.Author, Required()),
					field("Published date", "publishedDate", "date", form.PublishedDate, Required()),
				),
				Label(g.Text("Cover image "),
					Span(Class("hint"), g.Textf("max %s", humanSize(form.MaxBytes))),
					Input(Type("file"), Name("coverImage"), ID("coverImage"), g.Attr("accept", form.Accept),
						g.Attr("data-max-bytes", strconv.FormatInt(form.MaxBytes, 10)), Required()),
				),
				Img(Class("post-cover"), g.Attr("data-cover-preview"), Alt("Cover preview"), g.Attr("hidden")),
				Label(g.Text("Content"),
					Textarea(Name("content"), ID("content"), g.Attr("rows", "16"), Required(), g.Text(form.Content)),
				),
				Button(Type("submit"), g.Text("Publish Post")),
			),
		),
	))
}

func humanSize(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + "MB"
	}
	if n >= 1<<10 {
		return strconv.FormatInt(n>>10, 10) + "KB"
	}
	return strconv.FormatInt(n, 10) + "B"
}
