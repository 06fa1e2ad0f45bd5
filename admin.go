package techreader

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/techreader/strapi"
)

func (a *App) newPostForm() PostForm {
	return PostForm{
		Author:        a.Config.Author,
		PublishedDate: time.Now().Format(time.DateOnly),
		Accept:        a.Config.UploadAccept,
		MaxBytes:      a.Config.UploadMaxBytes,
	}
}

func (a *App) handleCreatePostForm(c echo.Context) error {
	meta := a.pageMeta(c, "Create Post", "Write a new article", "admin/create-post")
	return Render(c, a.Views.CreatePost(a.newPostForm(), meta))
}

func (a *App) handleCreatePostSubmit(c echo.Context) error {
	form := a.newPostForm()
	form.Title = strings.TrimSpace(c.FormValue("title"))
	form.Slug = strings.TrimSpace(c.FormValue("slug"))
	form.Author = strings.TrimSpace(c.FormValue("author"))
	form.PublishedDate = strings.TrimSpace(c.FormValue("publishedDate"))
	form.Content = c.FormValue("content")
	if form.Slug == "" {
		form.Slug = Slugify(form.Title)
	}

	fail := func(status int, msg string) error {
		form.Error = msg
		meta := a.pageMeta(c, "Create Post", "", "admin/create-post")
		return RenderStatus(c, status, a.Views.CreatePost(form, meta))
	}

	in := strapi.PostInput{
		Title:         form.Title,
		Content:       form.Content,
		Slug:          form.Slug,
		Author:        form.Author,
		PublishedDate: form.PublishedDate,
	}
	// Check the text fields before spending an upload on a form that cannot succeed.
	probe := in
	probe.CoverImage = 1
	if err := probe.Validate(); err != nil {
		return fail(http.StatusBadRequest, strapi.FormatError(err))
	}

	fh, err := formFile(c, "coverImage")
	if err != nil {
		return fail(http.StatusBadRequest, "Cover image is required")
	}
	ctx := c.Request().Context()
	cover, err := a.uploadFormFile(ctx, fh)
	if err != nil {
		if strapi.IsValidationError(err) {
			return fail(http.StatusBadRequest, strapi.FormatError(err))
		}
		a.Logger.Error("cover upload failed", zap.Error(err))
		return fail(http.StatusBadGateway, "Failed to upload image: "+strapi.FormatError(err))
	}

	in.CoverImage = cover.ID
	post, err := a.CMS.CreatePost(ctx, in)
	switch {
	case err == nil:
	case strapi.IsValidationError(err):
		return fail(http.StatusBadRequest, strapi.FormatError(err))
	case strapi.IsSlugConflict(err):
		return fail(http.StatusConflict, "A post with this slug already exists")
	default:
		a.Logger.Error("create post failed", zap.Error(err))
		return fail(http.StatusBadGateway, strapi.FormatError(err))
	}

	a.Logger.Info("post created", zap.String("slug", post.Slug), zap.Int64("cover", cover.ID))
	if err := AddFlash(c, "Post created successfully"); err != nil {
		return err
	}
	slug := post.Slug
	if slug == "" {
		slug = in.Slug
	}
	return c.Redirect(http.StatusSeeOther, "/blog/"+slug+"/")
}
