// Package strapi adapts a Strapi headless CMS to the blog: it issues the HTTP
// calls, normalizes the v4/v5 response shapes into Post, and carries the
// write-path encoding fallbacks and the upload relay.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultUserAgent = "techreader/1.0"
	maxResponseBytes = 10 << 20
)

// Config is everything the client needs; nothing is read from the environment here.
type Config struct {
	BaseURL string // e.g. http://localhost:1337
	Token   string // optional API token, sent as a bearer token

	HTTPClient *http.Client // defaults to a plain client with no extra timeout
	Logger     *zap.Logger  // defaults to a no-op logger
	UserAgent  string
}

// Client talks to the CMS REST API.
type Client struct {
	baseURL   string
	token     string
	http      *http.Client
	log       *zap.Logger
	userAgent string
}

// NewClient validates cfg and returns a ready Client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("strapi: BaseURL is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("strapi: invalid BaseURL %q", cfg.BaseURL)
	}
	c := &Client{
		baseURL:   base,
		token:     cfg.Token,
		http:      cfg.HTTPClient,
		log:       cfg.Logger,
		userAgent: cfg.UserAgent,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	return c, nil
}

// URL joins path onto the CMS base URL.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Get issues a GET and returns the raw response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, "application/json")
}

// Post sends payload as JSON. A []byte payload is sent verbatim.
func (c *Client) Post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json")
}

// Put sends payload as JSON. A []byte payload is sent verbatim.
func (c *Client) Put(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, body, "application/json")
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "application/json")
}

// PostMultipart posts an already encoded multipart body; contentType must carry the boundary.
func (c *Client) PostMultipart(ctx context.Context, path string, body io.Reader, contentType string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body, contentType)
}

func encodePayload(payload any) (io.Reader, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(p), nil
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("strapi: encode payload: %w", err)
		}
		return bytes.NewReader(b), nil
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return nil, fmt.Errorf("strapi: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("strapi request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("strapi: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("strapi: read response: %w", err)
	}

	c.log.Debug("strapi request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, data, statusMessage(resp.StatusCode))
		c.log.Warn("strapi error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Detail()),
			zap.String("request_id", requestID))
		return nil, apiErr
	}
	return data, nil
}

// Ping checks that the posts endpoint answers with a well-formed list.
func (c *Client) Ping(ctx context.Context) (int, error) {
	posts, err := c.FetchPosts(ctx)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}
