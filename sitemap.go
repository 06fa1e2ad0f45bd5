package techreader

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techreader/strapi"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

var staticPages = []string{"categories", "about", "contact"}

func (a *App) buildSitemap(posts []strapi.Post) sitemapURLSet {
	base := a.Config.URL
	urls := []sitemapURL{{Loc: BuildURL(base)}}
	for _, p := range staticPages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p)})
	}
	for _, p := range posts {
		lastMod := p.UpdatedAt
		if lastMod == "" {
			lastMod = p.Date()
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.Slug),
			LastMod: lastMod,
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, posts []strapi.Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(a.buildSitemap(posts))
}
