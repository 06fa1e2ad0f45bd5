package strapi

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxUploadSize caps uploads when the caller sets no limit.
	DefaultMaxUploadSize int64 = 5 << 20
	// DefaultAccept admits any image type.
	DefaultAccept = "image/*"

	uploadPath  = "/api/upload"
	uploadField = "files"
)

// UploadOptions constrain what Upload will relay.
type UploadOptions struct {
	MaxSize int64  // bytes; DefaultMaxUploadSize when zero
	Accept  string // comma separated MIME patterns or extensions, like an <input accept>
}

func (o UploadOptions) withDefaults() UploadOptions {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxUploadSize
	}
	if strings.TrimSpace(o.Accept) == "" {
		o.Accept = DefaultAccept
	}
	return o
}

// File is a single file to relay. Size is the declared size; the body is
// measured again while reading.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadedFile is what the CMS assigned to a stored asset.
type UploadedFile struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Name   string `json:"name"`
	Mime   string `json:"mime"`
	Size   int64  `json:"size"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Upload checks f against opts and forwards it to the CMS in one attempt.
// Every local rejection happens before the request is built.
func (c *Client) Upload(ctx context.Context, f *File, opts UploadOptions) (UploadedFile, error) {
	opts = opts.withDefaults()
	if f == nil || f.Body == nil {
		return UploadedFile{}, ErrNoFile
	}
	if f.Size > opts.MaxSize {
		return UploadedFile{}, tooLarge(opts.MaxSize)
	}
	data, err := io.ReadAll(io.LimitReader(f.Body, opts.MaxSize+1))
	if err != nil {
		return UploadedFile{}, fmt.Errorf("strapi: read upload: %w", err)
	}
	if len(data) == 0 {
		return UploadedFile{}, ErrNoFile
	}
	if int64(len(data)) > opts.MaxSize {
		return UploadedFile{}, tooLarge(opts.MaxSize)
	}

	name := filepath.Base(strings.TrimSpace(f.Name))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	mediaType := detectMediaType(f.ContentType, data)
	if !Accepts(opts.Accept, mediaType, name) {
		return UploadedFile{}, &ValidationError{Field: "file", Message: "File type not allowed: " + mediaType}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, uploadField, quoteEscaper.Replace(name)))
	h.Set("Content-Type", mediaType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("strapi: build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return UploadedFile{}, fmt.Errorf("strapi: build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadedFile{}, fmt.Errorf("strapi: build upload: %w", err)
	}

	body, err := c.PostMultipart(ctx, uploadPath, &buf, mw.FormDataContentType())
	if err != nil {
		return UploadedFile{}, err
	}

	doc := gjson.ParseBytes(body)
	if doc.IsArray() {
		doc = doc.Get("0")
	}
	if !doc.IsObject() {
		return UploadedFile{}, fmt.Errorf("upload: %w", ErrUnexpectedResponse)
	}
	out := UploadedFile{
		ID:     doc.Get("id").Int(),
		URL:    doc.Get("url").String(),
		Name:   doc.Get("name").String(),
		Mime:   doc.Get("mime").String(),
		Size:   int64(len(data)),
		Width:  int(doc.Get("width").Int()),
		Height: int(doc.Get("height").Int()),
	}
	if out.Name == "" {
		out.Name = name
	}
	if out.Mime == "" {
		out.Mime = mediaType
	}
	if (out.Width == 0 || out.Height == 0) && strings.HasPrefix(mediaType, "image/") {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			out.Width, out.Height = cfg.Width, cfg.Height
		}
	}
	c.log.Info("file uploaded",
		zap.Int64("id", out.ID),
		zap.String("name", out.Name),
		zap.String("mime", out.Mime),
		zap.Int64("size", out.Size))
	return out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func tooLarge(max int64) *ValidationError {
	return &ValidationError{Field: "file", Message: "File size must be less than " + formatSize(max)}
}

func formatSize(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	if n >= mb {
		return fmt.Sprintf("%.1fMB", float64(n)/mb)
	}
	return fmt.Sprintf("%dKB", n/1024)
}

// detectMediaType trusts a specific declared type and sniffs the content otherwise.
func detectMediaType(declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
		return mt
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}

// Accepts reports whether a file with mediaType and name matches accept,
// a comma separated list such as "image/*,application/pdf,.md".
func Accepts(accept, mediaType, name string) bool {
	mediaType = strings.ToLower(mediaType)
	for _, pattern := range strings.Split(accept, ",") {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "":
			continue
		case pattern == "*" || pattern == "*/*":
			return true
		case strings.HasPrefix(pattern, "."):
			if strings.EqualFold(filepath.Ext(name), pattern) {
				return true
			}
		case strings.HasSuffix(pattern, "/*"):
			if strings.HasPrefix(mediaType, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		case pattern == mediaType:
			return true
		}
	}
	return false
}
