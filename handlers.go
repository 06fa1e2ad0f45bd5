package techreader

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/eringen/techreader/strapi"
)

const morePostsLimit = 3

var stripMarkup = bluemonday.StrictPolicy()

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		a.Logger.Warn("fetch posts failed, rendering empty feed", zap.Error(err))
		posts = nil
	}
	meta := a.pageMeta(c, "", "", "")
	meta.Title = a.Config.Name + " | Latest Technology News & Insights"
	return Render(c, a.Views.Home(posts, meta))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	if !strapi.ValidSlug(slug) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	ctx := c.Request().Context()
	post, err := a.Cache.GetPost(ctx, slug)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return fmt.Errorf("load post %q: %w", slug, err)
	}

	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		a.Logger.Warn("fetch posts for sidebar failed", zap.Error(err))
	}

	meta := a.pageMeta(c, post.Title, MetaDescription(post.Content), "blog/"+post.Slug)
	meta.OGType = "article"
	meta.Image = MediaURL(a.Config.StrapiPublicURL, post.CoverURL())
	meta.JSONLD = BlogPostingJsonLD(post, a.Config)
	return Render(c, a.Views.Post(post, morePosts(post, posts), meta))
}

// morePosts returns up to morePostsLimit posts other than current, in feed order.
func morePosts(current strapi.Post, posts []strapi.Post) []strapi.Post {
	var out []strapi.Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		out = append(out, p)
		if len(out) == morePostsLimit {
			break
		}
	}
	return out
}

func (a *App) handleCategories(c echo.Context) error {
	cats, err := a.Cache.ListCategories(c.Request().Context())
	if err != nil {
		a.Logger.Warn("fetch categories failed", zap.Error(err))
		cats = nil
	}
	meta := a.pageMeta(c, "Categories", "Browse articles by technology categories and topics", "categories")
	return Render(c, a.Views.Categories(cats, meta))
}

func (a *App) handleAbout(c echo.Context) error {
	meta := a.pageMeta(c, "About", "About "+a.Config.Name, "about")
	return Render(c, a.Views.About(meta))
}

func (a *App) handleContact(c echo.Context) error {
	meta := a.pageMeta(c, "Contact", "Get in touch with the "+a.Config.Name+" team", "contact")
	return Render(c, a.Views.Contact(ContactForm{}, meta))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	var msg strapi.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	msg = sanitizeContact(msg)

	if _, err := a.CMS.SubmitContact(c.Request().Context(), msg); err != nil {
		status := http.StatusBadGateway
		if strapi.IsValidationError(err) {
			status = http.StatusBadRequest
		} else {
			a.Logger.Error("contact submission failed", zap.Error(err))
		}
		meta := a.pageMeta(c, "Contact", "", "contact")
		return RenderStatus(c, status, a.Views.Contact(ContactForm{Values: msg, Error: strapi.FormatError(err)}, meta))
	}

	if err := AddFlash(c, "Thank you! Your message has been sent."); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/contact/")
}

// sanitizeContact strips markup and surrounding space from every field.
func sanitizeContact(m strapi.ContactMessage) strapi.ContactMessage {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(stripMarkup.Sanitize(s)))
	}
	return strapi.ContactMessage{
		FirstName: clean(m.FirstName),
		LastName:  clean(m.LastName),
		Email:     strings.TrimSpace(m.Email),
		Subject:   clean(m.Subject),
		Message:   clean(m.Message),
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: " +
		strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func handleFavicon(c echo.Context) error {
	return echo.StaticFileHandler("static/favicon.svg", StaticAssets)(c)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func handleAdminRedirect(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/admin/create-post/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
		)
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			_ = writeJSONError(c, code, strapi.FormatError(err))
			return
		}
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
