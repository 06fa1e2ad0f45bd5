package strapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestExtractTextBlocks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "single paragraph",
			raw:  `[{"type":"paragraph","children":[{"type":"text","text":"Hello"}]}]`,
			want: "Hello",
		},
		{
			name: "children joined in order, blocks by newline",
			raw: `[
				{"type":"heading","children":[{"type":"text","text":"Go "},{"type":"text","text":"tips","bold":true}]},
				{"type":"paragraph","children":[{"type":"text","text":"one"},{"type":"text","text":" two"}]}
			]`,
			want: "Go tips\none two",
		},
		{
			name: "block without children is an empty line",
			raw:  `[{"type":"paragraph","children":[{"type":"text","text":"a"}]},{"type":"image"},{"type":"paragraph","children":[{"type":"text","text":"b"}]}]`,
			want: "a\n\nb",
		},
		{
			name: "child without text contributes nothing",
			raw:  `[{"type":"paragraph","children":[{"type":"text","text":"x"},{"type":"text"},{"type":"text","text":"y"}]}]`,
			want: "xy",
		},
		{
			name: "link children are flattened",
			raw:  `[{"type":"paragraph","children":[{"type":"text","text":"see "},{"type":"link","url":"https://go.dev","children":[{"type":"text","text":"go.dev"}]}]}]`,
			want: "see go.dev",
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(gjson.Parse(tt.raw)))
		})
	}
}

func TestExtractTextPlainPassesThrough(t *testing.T) {
	for _, s := range []string{"", "plain", "line one\nline two", "  spaced  ", "unicode ✓ ünïcödé"} {
		raw := gjson.Parse(string(mustJSON(t, s)))
		assert.Equal(t, s, ExtractText(raw))
	}
}

func TestExtractTextOtherShapes(t *testing.T) {
	assert.Equal(t, "", ExtractText(gjson.Result{}))
	assert.Equal(t, "", ExtractText(gjson.Parse(`null`)))
	assert.Equal(t, "", ExtractText(gjson.Parse(`false`)))
	assert.Equal(t, "", ExtractText(gjson.Parse(`0`)))
	assert.Equal(t, "42", ExtractText(gjson.Parse(`42`)))
	assert.Equal(t, "true", ExtractText(gjson.Parse(`true`)))
	assert.Equal(t, `{"data":"wrapped"}`, ExtractText(gjson.Parse(`{"data":"wrapped"}`)))
}

func TestNormalizePostV5(t *testing.T) {
	raw := gjson.Parse(`{
		"id": 7,
		"documentId": "abc123",
		"title": "Hello",
		"slug": "hello",
		"author": "Ada",
		"content": [{"type":"paragraph","children":[{"type":"text","text":"Body"}]}],
		"publishedDate": "2024-05-01",
		"publishedAt": "2024-05-01T10:00:00.000Z",
		"updatedAt": "2024-05-02T10:00:00.000Z",
		"createdAt": "2024-04-30T10:00:00.000Z",
		"coverImage": {
			"id": 3,
			"name": "cover.png",
			"url": "/uploads/cover.png",
			"alternativeText": null,
			"caption": "A cover",
			"width": 1200,
			"height": 630,
			"formats": {"thumbnail": {"name":"thumbnail_cover.png","url":"/uploads/thumbnail_cover.png","width":245,"height":129,"size":12.5}}
		}
	}`)

	p := NormalizePost(raw)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "abc123", p.DocumentID)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "hello", p.Slug)
	assert.Equal(t, "Ada", p.Author)
	assert.Equal(t, "Body", p.Content)
	assert.Equal(t, "2024-05-01", p.PublishedDate)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", p.PublishedAt)
	assert.Equal(t, "2024-05-02T10:00:00.000Z", p.UpdatedAt)
	assert.Equal(t, "2024-04-30T10:00:00.000Z", p.CreatedAt)

	require.NotNil(t, p.CoverImage)
	require.NotNil(t, p.CoverImage.Data)
	assert.Equal(t, int64(3), p.CoverImage.Data.ID)
	attrs := p.CoverImage.Data.Attributes
	assert.Equal(t, "/uploads/cover.png", attrs.URL)
	assert.Nil(t, attrs.AlternativeText)
	require.NotNil(t, attrs.Caption)
	assert.Equal(t, "A cover", *attrs.Caption)
	assert.Equal(t, 1200, attrs.Width)
	assert.Equal(t, 630, attrs.Height)
	assert.Equal(t, "/uploads/thumbnail_cover.png", attrs.Formats["thumbnail"].URL)
	assert.Equal(t, "/uploads/cover.png", p.CoverURL())
	assert.Equal(t, "Hello", p.CoverAlt())
}

func TestNormalizePostV4Attributes(t *testing.T) {
	raw := gjson.Parse(`{
		"id": 2,
		"attributes": {
			"title": "Nested",
			"slug": "nested",
			"author": "Linus",
			"content": "Already plain",
			"publishedAt": "2023-01-01T00:00:00.000Z",
			"coverImage": {"data": {"id": 9, "attributes": {"url": "/uploads/n.jpg", "alternativeText": "alt", "width": 10, "height": 20}}}
		}
	}`)

	p := NormalizePost(raw)

	assert.Equal(t, int64(2), p.ID)
	assert.Equal(t, "Nested", p.Title)
	assert.Equal(t, "Already plain", p.Content)
	assert.Equal(t, "2023-01-01T00:00:00.000Z", p.Date())
	require.NotNil(t, p.CoverImage)
	assert.Equal(t, int64(9), p.CoverImage.Data.ID)
	assert.Equal(t, "/uploads/n.jpg", p.CoverURL())
	assert.Equal(t, "alt", p.CoverAlt())
}

func TestNormalizePostMissingFieldsNeverFail(t *testing.T) {
	for _, raw := range []string{`{}`, `{"id":1}`, `null`, `"nonsense"`, `{"attributes":"bad"}`} {
		t.Run(raw, func(t *testing.T) {
			var p Post
			assert.NotPanics(t, func() { p = NormalizePost(gjson.Parse(raw)) })
			assert.Empty(t, p.Title)
			assert.Empty(t, p.Slug)
			assert.Empty(t, p.Author)
			assert.Empty(t, p.Content)
			assert.Nil(t, p.CoverImage)
		})
	}
}

func TestNormalizePostWithoutCoverImage(t *testing.T) {
	for _, raw := range []string{
		`{"title":"t"}`,
		`{"title":"t","coverImage":null}`,
		`{"attributes":{"title":"t","coverImage":{"data":null}}}`,
	} {
		p := NormalizePost(gjson.Parse(raw))
		assert.Nil(t, p.CoverImage, raw)
		assert.Equal(t, "", p.CoverURL())
	}
}

func TestNormalizePosts(t *testing.T) {
	posts, err := NormalizePosts([]byte(`{"data":[{"id":1,"title":"a"},{"id":2,"title":"b"}],"meta":{}}`))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].Title)
	assert.Equal(t, "b", posts[1].Title)

	posts, err = NormalizePosts([]byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	_, err = NormalizePosts([]byte(`{"data":{"id":1}}`))
	assert.ErrorIs(t, err, ErrUnexpectedResponse)

	_, err = NormalizePosts([]byte(`not json`))
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestNormalizeCategory(t *testing.T) {
	c := NormalizeCategory(gjson.Parse(`{"id":4,"documentId":"cat4","name":"Go","slug":"go","description":"Gophers"}`))
	assert.Equal(t, Category{ID: 4, DocumentID: "cat4", Name: "Go", Slug: "go", Description: "Gophers"}, c)

	c = NormalizeCategory(gjson.Parse(`{"id":5,"attributes":{"name":"AI","slug":"ai"}}`))
	assert.Equal(t, "AI", c.Name)
	assert.Equal(t, "ai", c.Slug)
}
