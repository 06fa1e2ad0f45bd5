package strapi

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

const slugFormatMessage = "Slug must contain only lowercase letters, numbers, and hyphens"

// ValidSlug reports whether s is made only of lowercase letters, digits and hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate checks a create request. Fields are checked in form order so the
// first missing one is reported.
func (in PostInput) Validate() error {
	switch {
	case blank(in.Title):
		return required("title", "Title")
	case blank(in.Content):
		return required("content", "Content")
	case blank(in.Slug):
		return required("slug", "Slug")
	case blank(in.Author):
		return required("author", "Author")
	case blank(in.PublishedDate):
		return required("publishedDate", "Published date")
	case in.CoverImage <= 0:
		return required("coverImage", "Cover image")
	case !ValidSlug(in.Slug):
		return &ValidationError{Field: "slug", Message: slugFormatMessage}
	}
	return nil
}

// Validate checks a partial update: any provided field must be usable.
func (u PostUpdate) Validate() error {
	switch {
	case u.Title != nil && blank(*u.Title):
		return required("title", "Title")
	case u.Content != nil && blank(*u.Content):
		return required("content", "Content")
	case u.Slug != nil && blank(*u.Slug):
		return required("slug", "Slug")
	case u.Author != nil && blank(*u.Author):
		return required("author", "Author")
	case u.PublishedDate != nil && blank(*u.PublishedDate):
		return required("publishedDate", "Published date")
	case u.CoverImage != nil && *u.CoverImage <= 0:
		return required("coverImage", "Cover image")
	case u.Slug != nil && !ValidSlug(*u.Slug):
		return &ValidationError{Field: "slug", Message: slugFormatMessage}
	}
	return nil
}

// Empty reports whether the update carries no field at all.
func (u PostUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Slug == nil &&
		u.Author == nil && u.PublishedDate == nil && u.CoverImage == nil && !u.ClearCoverImage
}
