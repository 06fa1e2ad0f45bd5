package techreader

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// pageMeta builds the metadata for a page at path, attaching the request's
// CSRF token and pending flash notices.
func (a *App) pageMeta(c echo.Context, title, description, path string) PageMeta {
	if description == "" {
		description = a.Config.Description
	}
	fullTitle := a.Config.Name
	if title != "" {
		fullTitle = title + " | " + a.Config.Name
	}
	return PageMeta{
		Title:       fullTitle,
		Description: description,
		URL:         BuildURL(a.Config.URL, path),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(a.Config),
		CSRFToken:   CsrfToken(c),
		Flash:       Flashes(c),
	}
}
