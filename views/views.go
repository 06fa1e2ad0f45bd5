// Package views provides the default techreader page templates, written as
// gomponents nodes and exposed as templ components.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"

	"github.com/eringen/techreader"
)

// Site holds site-wide settings the templates need.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	MediaBase   string // public CMS base for cover images
}

// SiteFromConfig copies the template-relevant settings out of cfg.
func SiteFromConfig(cfg techreader.SiteConfig) Site {
	return Site{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
		MediaBase:   cfg.StrapiPublicURL,
	}
}

type views struct {
	site Site
}

// New returns the default ViewFuncs for site.
func New(site Site) techreader.ViewFuncs {
	v := &views{site: site}
	return techreader.ViewFuncs{
		Home:        v.home,
		Post:        v.post,
		Categories:  v.categories,
		About:       v.about,
		Contact:     v.contact,
		CreatePost:  v.createPost,
		NotFound:    v.notFound,
		ServerError: v.serverError,
	}
}

// component adapts a gomponents node to templ.
func component(n g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}
