package strapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

const postsPath = "/api/posts"

// FetchPosts returns every post with relations populated.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	body, err := c.Get(ctx, postsPath+"?populate=*")
	if err != nil {
		return nil, err
	}
	posts, err := NormalizePosts(body)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	return posts, nil
}

// FetchPostBySlug returns the first post whose slug equals slug, or ErrNotFound.
func (c *Client) FetchPostBySlug(ctx context.Context, slug string) (Post, error) {
	q := url.Values{}
	q.Set("filters[slug][$eq]", slug)
	q.Set("populate", "*")
	body, err := c.Get(ctx, postsPath+"?"+q.Encode())
	if err != nil {
		return Post{}, err
	}
	posts, err := NormalizePosts(body)
	if err != nil {
		return Post{}, fmt.Errorf("fetch post %q: %w", slug, err)
	}
	if len(posts) == 0 {
		return Post{}, ErrNotFound
	}
	return posts[0], nil
}

// CreatePost validates in and writes it, trying each content encoding in
// turn until the CMS accepts one. Attempts never overlap.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (Post, error) {
	if err := in.Validate(); err != nil {
		return Post{}, err
	}
	return firstSuccess(createEncodings, func(enc ContentEncoding) (Post, error) {
		payload := map[string]any{
			"data": map[string]any{
				"title":         in.Title,
				"content":       enc.Encode(in.Content),
				"slug":          in.Slug,
				"author":        in.Author,
				"publishedDate": in.PublishedDate,
				"coverImage":    in.CoverImage,
			},
		}
		body, err := c.Post(ctx, postsPath, payload)
		if err != nil {
			c.log.Info("create post attempt rejected",
				zap.String("slug", in.Slug),
				zap.String("encoding", enc.Name),
				zap.Error(err))
			return Post{}, err
		}
		return normalizeEntry(body), nil
	})
}

// UpdatePost sends only the fields set in u. Rich text is retried only when
// the update carries content.
func (c *Client) UpdatePost(ctx context.Context, documentID string, u PostUpdate) (Post, error) {
	if blank(documentID) {
		return Post{}, &ValidationError{Field: "documentId", Message: "Document ID is required for updates"}
	}
	if u.Empty() {
		return Post{}, &ValidationError{Field: "data", Message: "No fields to update"}
	}
	if err := u.Validate(); err != nil {
		return Post{}, err
	}
	encodings := []ContentEncoding{PlainText}
	if u.Content != nil {
		encodings = updateEncodings
	}
	path := postsPath + "/" + url.PathEscape(strings.TrimSpace(documentID))
	return firstSuccess(encodings, func(enc ContentEncoding) (Post, error) {
		payload, err := u.payload(enc)
		if err != nil {
			return Post{}, err
		}
		body, err := c.Put(ctx, path, payload)
		if err != nil {
			c.log.Info("update post attempt rejected",
				zap.String("document_id", documentID),
				zap.String("encoding", enc.Name),
				zap.Error(err))
			return Post{}, err
		}
		return normalizeEntry(body), nil
	})
}

// payload builds {"data": {...}} holding only the provided fields.
func (u PostUpdate) payload(enc ContentEncoding) ([]byte, error) {
	body := []byte(`{"data":{}}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			body, err = sjson.SetBytes(body, path, v)
		}
	}
	if u.Title != nil {
		set("data.title", *u.Title)
	}
	if u.Content != nil {
		set("data.content", enc.Encode(*u.Content))
	}
	if u.Slug != nil {
		set("data.slug", *u.Slug)
	}
	if u.Author != nil {
		set("data.author", *u.Author)
	}
	if u.PublishedDate != nil {
		set("data.publishedDate", *u.PublishedDate)
	}
	if u.ClearCoverImage {
		set("data.coverImage", nil)
	} else if u.CoverImage != nil {
		set("data.coverImage", *u.CoverImage)
	}
	if err != nil {
		return nil, fmt.Errorf("strapi: build update payload: %w", err)
	}
	return body, nil
}

// DeletePost removes the post with the given document id.
func (c *Client) DeletePost(ctx context.Context, documentID string) error {
	if blank(documentID) {
		return &ValidationError{Field: "documentId", Message: "Document ID is required"}
	}
	_, err := c.Delete(ctx, postsPath+"/"+url.PathEscape(strings.TrimSpace(documentID)))
	return err
}
