package strapi

import (
	"strings"

	"github.com/tidwall/gjson"
)

// attributes returns the object holding a record's fields: the "attributes"
// object for v4 responses, the record itself for v5.
func attributes(raw gjson.Result) gjson.Result {
	if attrs := raw.Get("attributes"); attrs.IsObject() {
		return attrs
	}
	return raw
}

// NormalizePost maps one CMS post record into a Post. It never fails:
// anything missing or malformed upstream becomes an empty field.
func NormalizePost(raw gjson.Result) Post {
	f := attributes(raw)
	documentID := raw.Get("documentId").String()
	if documentID == "" {
		documentID = f.Get("documentId").String()
	}
	return Post{
		ID:            raw.Get("id").Int(),
		DocumentID:    documentID,
		Title:         f.Get("title").String(),
		Slug:          f.Get("slug").String(),
		Author:        f.Get("author").String(),
		Content:       ExtractText(f.Get("content")),
		PublishedDate: f.Get("publishedDate").String(),
		PublishedAt:   f.Get("publishedAt").String(),
		UpdatedAt:     f.Get("updatedAt").String(),
		CreatedAt:     f.Get("createdAt").String(),
		CoverImage:    normalizeCover(f.Get("coverImage")),
	}
}

// NormalizePosts parses a list response ({"data": [...]}) into posts.
// Only a broken envelope is an error; individual records never are.
func NormalizePosts(body []byte) ([]Post, error) {
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, ErrUnexpectedResponse
	}
	posts := make([]Post, 0, len(data.Array()))
	data.ForEach(func(_, item gjson.Result) bool {
		posts = append(posts, NormalizePost(item))
		return true
	})
	return posts, nil
}

// normalizeEntry parses a single-entry response ({"data": {...}}), tolerating
// a bare record as well.
func normalizeEntry(body []byte) Post {
	doc := gjson.ParseBytes(body)
	if data := doc.Get("data"); data.IsObject() {
		return NormalizePost(data)
	}
	return NormalizePost(doc)
}

// ExtractText flattens post content to plain text. Strings pass through
// unchanged; block arrays become one line per block made of the block's
// inline text in order. Formatting is dropped.
func ExtractText(content gjson.Result) string {
	switch {
	case !content.Exists(), content.Type == gjson.Null, content.Type == gjson.False:
		return ""
	case content.Type == gjson.Number && content.Num == 0:
		return ""
	case content.Type == gjson.String:
		return content.Str
	case content.IsArray():
		var lines []string
		content.ForEach(func(_, block gjson.Result) bool {
			var b strings.Builder
			inlineText(&b, block.Get("children"))
			lines = append(lines, b.String())
			return true
		})
		return strings.Join(lines, "\n")
	default:
		return content.String()
	}
}

// inlineText appends the text of each child in order. Inline nodes without
// their own text (links, list items) contribute their children's text.
func inlineText(b *strings.Builder, children gjson.Result) {
	if !children.IsArray() {
		return
	}
	children.ForEach(func(_, child gjson.Result) bool {
		if text := child.Get("text"); text.Exists() {
			b.WriteString(text.String())
		} else {
			inlineText(b, child.Get("children"))
		}
		return true
	})
}

func normalizeCover(raw gjson.Result) *CoverImage {
	img := raw
	if data := raw.Get("data"); data.Exists() {
		img = data
		if data.IsArray() {
			img = data.Get("0")
		}
	}
	if !img.IsObject() {
		return nil
	}
	f := attributes(img)
	attrs := CoverImageAttributes{
		Name:            f.Get("name").String(),
		URL:             f.Get("url").String(),
		AlternativeText: optionalString(f.Get("alternativeText")),
		Caption:         optionalString(f.Get("caption")),
		Width:           int(f.Get("width").Int()),
		Height:          int(f.Get("height").Int()),
		Size:            f.Get("size").Float(),
	}
	if formats := f.Get("formats"); formats.IsObject() {
		attrs.Formats = make(map[string]ImageFormat)
		formats.ForEach(func(key, v gjson.Result) bool {
			attrs.Formats[key.String()] = ImageFormat{
				Name:   v.Get("name").String(),
				Hash:   v.Get("hash").String(),
				Ext:    v.Get("ext").String(),
				Mime:   v.Get("mime").String(),
				Path:   optionalString(v.Get("path")),
				Width:  int(v.Get("width").Int()),
				Height: int(v.Get("height").Int()),
				Size:   v.Get("size").Float(),
				URL:    v.Get("url").String(),
			}
			return true
		})
	}
	return &CoverImage{Data: &CoverImageData{ID: img.Get("id").Int(), Attributes: attrs}}
}

func optionalString(r gjson.Result) *string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	s := r.String()
	return &s
}

// NormalizeCategory maps one category record, flat or nested under attributes.
func NormalizeCategory(raw gjson.Result) Category {
	f := attributes(raw)
	documentID := raw.Get("documentId").String()
	if documentID == "" {
		documentID = f.Get("documentId").String()
	}
	return Category{
		ID:          raw.Get("id").Int(),
		DocumentID:  documentID,
		Name:        f.Get("name").String(),
		Slug:        f.Get("slug").String(),
		Description: ExtractText(f.Get("description")),
	}
}
