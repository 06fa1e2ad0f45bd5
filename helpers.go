package techreader

import (
	"encoding/json"
	"math"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"

	"github.com/eringen/techreader/strapi"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// Slugify converts a title to a URL-safe slug accepted by the CMS.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// MediaURL resolves a CMS asset path against the public CMS base.
// Absolute URLs are returned unchanged.
func MediaURL(base, p string) string {
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		return p
	case !strings.HasPrefix(p, "/"):
		p = "/" + p
	}
	return strings.TrimRight(base, "/") + p
}

// FormatDate renders an ISO date or timestamp as "January 2, 2006".
// Unparseable input is returned as is.
func FormatDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}

// ReadingTime estimates minutes to read content, rounded up.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// Truncate shortens text to at most n runes, cutting back to a word
// boundary, and appends "...".
func Truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	cut := string([]rune(text)[:n])
	if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \t\n") + "..."
}

// Excerpt returns the first paragraph of content, limited to 200 runes.
func Excerpt(content string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(content), "\n\n")
	first, _, _ = strings.Cut(first, "\n")
	if r := []rune(first); len(r) > 200 {
		return string(r[:200])
	}
	return first
}

// MetaDescription returns the first 160 runes of content followed by "...".
func MetaDescription(content string) string {
	r := []rune(strings.TrimSpace(content))
	if len(r) > 160 {
		r = r[:160]
	}
	return string(r) + "..."
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post strapi.Post, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   Excerpt(post.Content),
		"datePublished": post.Date(),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.UpdatedAt != "" {
		data["dateModified"] = post.UpdatedAt
	}
	if author := firstNonEmpty(post.Author, cfg.Author); author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if img := MediaURL(cfg.StrapiPublicURL, post.CoverURL()); img != "" {
		data["image"] = img
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
