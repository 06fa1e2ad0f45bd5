package techreader

import "github.com/eringen/techreader/strapi"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template,
// plus request-scoped values the layout needs.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image
	JSONLD      string
	CSRFToken   string
	Flash       []string
}

// ContactForm is the state of the contact page form.
type ContactForm struct {
	Values strapi.ContactMessage
	Error  string
}

// PostForm is the state of the admin create-post form.
type PostForm struct {
	Title         string
	Slug          string
	Author        string
	PublishedDate string
	Content       string
	Error         string

	Accept   string // accepted cover image types
	MaxBytes int64
}
