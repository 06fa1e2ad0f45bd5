package techreader

import (
	"encoding/xml"
	"math"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techreader/strapi"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	Author      string        `xml:"author,omitempty"`
	PubDate     string        `xml:"pubDate,omitempty"`
	GUID        string        `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// rssDate converts a CMS date or timestamp to RFC 1123Z, or "" when unparseable.
func rssDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.RFC1123Z)
		}
	}
	return ""
}

func (a *App) buildFeed(posts []strapi.Post) rssXML {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := BuildURL(base, "blog", p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: Excerpt(p.Content),
			Author:      p.Author,
			PubDate:     rssDate(p.Date()),
			GUID:        postURL,
		}
		item.Enclosure = a.coverEnclosure(p)
		items = append(items, item)
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
}

// coverEnclosure describes the post's cover image, or nil when the CMS did
// not report its size: RSS requires a length.
func (a *App) coverEnclosure(p strapi.Post) *rssEnclosure {
	if p.CoverImage == nil || p.CoverImage.Data == nil {
		return nil
	}
	attrs := p.CoverImage.Data.Attributes
	if attrs.URL == "" || attrs.Size <= 0 {
		return nil
	}
	return &rssEnclosure{
		URL:    MediaURL(a.Config.StrapiPublicURL, attrs.URL),
		Type:   mime.TypeByExtension(path.Ext(attrs.URL)),
		Length: int64(math.Round(attrs.Size * 1024)),
	}
}

func (a *App) renderRSS(c echo.Context, posts []strapi.Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(a.buildFeed(posts))
}
