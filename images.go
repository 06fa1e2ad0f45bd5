package techreader

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techreader/strapi"
)

// formFile returns the first uploaded file found under any of fields.
func formFile(c echo.Context, fields ...string) (*multipart.FileHeader, error) {
	for _, name := range fields {
		fh, err := c.FormFile(name)
		if err == nil && fh != nil {
			return fh, nil
		}
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
	}
	return nil, http.ErrMissingFile
}

// uploadFormFile relays an uploaded form file to the CMS media library
// using the configured size and type limits.
func (a *App) uploadFormFile(ctx context.Context, fh *multipart.FileHeader) (strapi.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return strapi.UploadedFile{}, err
	}
	defer src.Close()

	return a.CMS.Upload(ctx, &strapi.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        src,
	}, a.uploadOptions())
}

func (a *App) uploadOptions() strapi.UploadOptions {
	return strapi.UploadOptions{
		MaxSize: a.Config.UploadMaxBytes,
		Accept:  a.Config.UploadAccept,
	}
}
