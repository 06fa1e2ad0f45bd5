package strapi

// Post is the normalized blog post shape every page renders from.
// Content is always plain text, whatever encoding the CMS stored.
type Post struct {
	ID            int64       `json:"id"`
	DocumentID    string      `json:"documentId,omitempty"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Author        string      `json:"author"`
	Content       string      `json:"content"`
	PublishedDate string      `json:"publishedDate"`
	PublishedAt   string      `json:"publishedAt"`
	UpdatedAt     string      `json:"updatedAt"`
	CreatedAt     string      `json:"createdAt"`
	CoverImage    *CoverImage `json:"coverImage,omitempty"`
}

// CoverImage wraps the image reference in a {data: {id, attributes}} envelope,
// regardless of how the CMS version nested it.
type CoverImage struct {
	Data *CoverImageData `json:"data,omitempty"`
}

type CoverImageData struct {
	ID         int64                `json:"id"`
	Attributes CoverImageAttributes `json:"attributes"`
}

type CoverImageAttributes struct {
	Name            string                 `json:"name"`
	URL             string                 `json:"url"`
	AlternativeText *string                `json:"alternativeText,omitempty"`
	Caption         *string                `json:"caption,omitempty"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	Size            float64                `json:"size"` // kilobytes, as the CMS reports it
	Formats         map[string]ImageFormat `json:"formats,omitempty"`
}

// ImageFormat is one of the resized variants (thumbnail, small, ...) the CMS generates.
type ImageFormat struct {
	Name   string  `json:"name"`
	Hash   string  `json:"hash"`
	Ext    string  `json:"ext"`
	Mime   string  `json:"mime"`
	Path   *string `json:"path,omitempty"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Size   float64 `json:"size"`
	URL    string  `json:"url"`
}

// CoverURL returns the cover image path, or "" when the post has none.
func (p Post) CoverURL() string {
	if p.CoverImage == nil || p.CoverImage.Data == nil {
		return ""
	}
	return p.CoverImage.Data.Attributes.URL
}

// CoverAlt returns the alternative text of the cover image, falling back to the title.
func (p Post) CoverAlt() string {
	if p.CoverImage == nil || p.CoverImage.Data == nil {
		return p.Title
	}
	if alt := p.CoverImage.Data.Attributes.AlternativeText; alt != nil && *alt != "" {
		return *alt
	}
	return p.Title
}

// Date returns the editorial date, falling back to the CMS publication timestamp.
func (p Post) Date() string {
	if p.PublishedDate != "" {
		return p.PublishedDate
	}
	return p.PublishedAt
}

// RichTextBlock is the CMS-native block content node.
type RichTextBlock struct {
	Type     string          `json:"type"`
	Children []RichTextChild `json:"children"`
}

type RichTextChild struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PostInput carries every field required to create a post.
type PostInput struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Slug          string `json:"slug"`
	Author        string `json:"author"`
	PublishedDate string `json:"publishedDate"`
	CoverImage    int64  `json:"coverImage"`
}

// PostUpdate is a partial update; nil fields are left untouched in the CMS.
type PostUpdate struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	Author        *string `json:"author,omitempty"`
	PublishedDate *string `json:"publishedDate,omitempty"`
	CoverImage    *int64  `json:"coverImage,omitempty"`
	// ClearCoverImage sends coverImage as null, detaching the current cover.
	ClearCoverImage bool `json:"-"`
}

// Category is a post category as served by GET /api/categories.
type Category struct {
	ID          int64  `json:"id"`
	DocumentID  string `json:"documentId,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ContactMessage is a contact form submission relayed to the CMS.
type ContactMessage struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required"`
	LastName  string `json:"lastName" form:"lastName" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required"`
	Subject   string `json:"subject" form:"subject" validate:"required"`
	Message   string `json:"message" form:"message" validate:"required"`
}
