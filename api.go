package techreader

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/eringen/techreader/strapi"
)

const maxJSONBody = 1 << 20

var errBodyTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request body too large")

// apiResponse is the envelope of every internal API response.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSONError(c echo.Context, status int, msg string) error {
	return c.JSON(status, apiResponse{Success: false, Error: msg})
}

func writeJSONSuccess(c echo.Context, msg string, data any) error {
	return c.JSON(http.StatusOK, apiResponse{Success: true, Message: msg, Data: data})
}

// readPayload returns the "data" object of a JSON request body, or an
// *echo.HTTPError describing what is wrong with it.
func readPayload(c echo.Context) (gjson.Result, *echo.HTTPError) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxJSONBody+1))
	if err != nil {
		return gjson.Result{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if len(body) > maxJSONBody {
		return gjson.Result{}, errBodyTooLarge
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return gjson.Result{}, echo.NewHTTPError(http.StatusBadRequest, "Missing data payload in the request body")
	}
	return data, nil
}

func writePayloadError(c echo.Context, he *echo.HTTPError) error {
	msg, _ := he.Message.(string)
	return writeJSONError(c, he.Code, msg)
}

func optString(data gjson.Result, key string) *string {
	v := data.Get(key)
	if !v.Exists() {
		return nil
	}
	s := v.String()
	return &s
}

// writeCMSError maps a CMS write failure to an API response: local validation
// is a 400, any upstream message mentioning the slug a 409, the rest a 500.
func (a *App) writeCMSError(c echo.Context, op string, err error) error {
	if strapi.IsValidationError(err) {
		return writeJSONError(c, http.StatusBadRequest, strapi.FormatError(err))
	}
	if strapi.IsSlugConflict(err) {
		return writeJSONError(c, http.StatusConflict, "A post with this slug already exists")
	}
	var apiErr *strapi.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return writeJSONError(c, http.StatusNotFound, strapi.FormatError(err))
	}
	a.Logger.Error(op+" failed", zap.Error(err))
	return writeJSONError(c, http.StatusInternalServerError, strapi.FormatError(err))
}

func (a *App) apiCreatePost(c echo.Context) error {
	data, problem := readPayload(c)
	if problem != nil {
		return writePayloadError(c, problem)
	}

	post, err := a.CMS.CreatePost(c.Request().Context(), strapi.PostInput{
		Title:         data.Get("title").String(),
		Content:       data.Get("content").String(),
		Slug:          data.Get("slug").String(),
		Author:        data.Get("author").String(),
		PublishedDate: data.Get("publishedDate").String(),
		CoverImage:    data.Get("coverImage").Int(),
	})
	if err != nil {
		return a.writeCMSError(c, "create post", err)
	}
	a.Logger.Info("post created", zap.String("slug", post.Slug), zap.String("document_id", post.DocumentID))
	return writeJSONSuccess(c, "Post created successfully", post)
}

func (a *App) apiUpdatePost(c echo.Context) error {
	documentID := c.QueryParam("documentId")
	if documentID == "" {
		return writeJSONError(c, http.StatusBadRequest, "Document ID is required for updates")
	}
	data, problem := readPayload(c)
	if problem != nil {
		return writePayloadError(c, problem)
	}

	update := strapi.PostUpdate{
		Title:         optString(data, "title"),
		Content:       optString(data, "content"),
		Slug:          optString(data, "slug"),
		Author:        optString(data, "author"),
		PublishedDate: optString(data, "publishedDate"),
	}
	switch v := data.Get("coverImage"); {
	case v.Type == gjson.Null && v.Exists():
		update.ClearCoverImage = true
	case v.Exists():
		id := v.Int()
		update.CoverImage = &id
	}

	post, err := a.CMS.UpdatePost(c.Request().Context(), documentID, update)
	if err != nil {
		return a.writeCMSError(c, "update post", err)
	}
	return writeJSONSuccess(c, "Post updated successfully", post)
}

func (a *App) apiDeletePost(c echo.Context) error {
	documentID := c.QueryParam("documentId")
	if documentID == "" {
		return writeJSONError(c, http.StatusBadRequest, "Document ID is required")
	}
	if err := a.CMS.DeletePost(c.Request().Context(), documentID); err != nil {
		return a.writeCMSError(c, "delete post", err)
	}
	return writeJSONSuccess(c, "Post deleted successfully", nil)
}

func (a *App) apiUpload(c echo.Context) error {
	fh, err := formFile(c, "file", "files")
	if err != nil {
		return writeJSONError(c, http.StatusBadRequest, strapi.ErrNoFile.Message)
	}
	uploaded, err := a.uploadFormFile(c.Request().Context(), fh)
	if err != nil {
		if strapi.IsValidationError(err) {
			return writeJSONError(c, http.StatusBadRequest, strapi.FormatError(err))
		}
		a.Logger.Error("upload failed", zap.String("file", fh.Filename), zap.Error(err))
		return writeJSONError(c, http.StatusInternalServerError, strapi.FormatError(err))
	}
	return writeJSONSuccess(c, "File uploaded successfully", uploaded)
}

func (a *App) apiContact(c echo.Context) error {
	var msg strapi.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&msg); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "All fields are required")
	}

	entry, err := a.CMS.SubmitContact(c.Request().Context(), sanitizeContact(msg))
	if err != nil {
		if strapi.IsValidationError(err) {
			return writeJSONError(c, http.StatusBadRequest, strapi.FormatError(err))
		}
		a.Logger.Error("contact submission failed", zap.Error(err))
		return writeJSONError(c, http.StatusInternalServerError, strapi.FormatError(err))
	}
	return writeJSONSuccess(c, "Contact form submitted successfully", entry)
}

type newsletterRequest struct {
	Email string `json:"email" form:"email" validate:"required"`
}

func (a *App) apiNewsletter(c echo.Context) error {
	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Email is required")
	}

	entry, err := a.CMS.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		if strapi.IsValidationError(err) {
			return writeJSONError(c, http.StatusBadRequest, strapi.FormatError(err))
		}
		a.Logger.Error("newsletter subscription failed", zap.Error(err))
		return writeJSONError(c, http.StatusInternalServerError, strapi.FormatError(err))
	}
	return writeJSONSuccess(c, "Subscribed successfully", entry)
}
