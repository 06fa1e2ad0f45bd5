package strapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotFound is returned when a lookup matches no CMS record.
	ErrNotFound = errors.New("strapi: not found")

	// ErrUnexpectedResponse is returned when a response envelope has no data array/object.
	ErrUnexpectedResponse = errors.New("strapi: unexpected response shape")

	// ErrNoFile is returned by Upload when there is nothing to send.
	ErrNoFile = &ValidationError{Field: "file", Message: "No file provided"}
)

// ValidationError is a local, field-specific rejection raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func required(field, label string) *ValidationError {
	return &ValidationError{Field: field, Message: label + " is required"}
}

// APIError is a non-2xx response from the CMS. Message comes from the CMS
// error body when it can be parsed.
type APIError struct {
	Status  int
	Name    string
	Message string
	// Paths lists the attribute paths named in validation details, e.g. "slug".
	Paths []string
	Body  []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strapi: %d: %s", e.Status, e.Detail())
}

// Detail is the human readable part of the error, without the status prefix.
func (e *APIError) Detail() string {
	if len(e.Paths) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Paths, ", ") + ")"
}

// parseAPIError builds an APIError from a Strapi error body of the form
// {"data": null, "error": {"status", "name", "message", "details": {"errors": [...]}}}.
// fallback is used as the message when the body carries none.
func parseAPIError(status int, body []byte, fallback string) *APIError {
	apiErr := &APIError{Status: status, Body: body}
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		errDoc := doc.Get("error")
		if !errDoc.IsObject() {
			errDoc = doc
		}
		apiErr.Name = errDoc.Get("name").String()
		apiErr.Message = strings.TrimSpace(errDoc.Get("message").String())
		errDoc.Get("details.errors").ForEach(func(_, item gjson.Result) bool {
			var parts []string
			item.Get("path").ForEach(func(_, p gjson.Result) bool {
				parts = append(parts, p.String())
				return true
			})
			if len(parts) > 0 {
				apiErr.Paths = append(apiErr.Paths, strings.Join(parts, "."))
			}
			return true
		})
	}
	if apiErr.Message == "" {
		apiErr.Message = fallback
	}
	return apiErr
}

func statusMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d %s", status, http.StatusText(status))
}

// FormatError turns any adapter error into a message safe to show to callers.
func FormatError(err error) string {
	if err == nil {
		return "An unknown error occurred"
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return err.Error()
}

// IsValidationError reports whether err is a local validation rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSlugConflict reports whether an upstream error refers to the slug attribute,
// which for posts means the slug is already taken.
func IsSlugConflict(err error) bool {
	if err == nil || IsValidationError(err) {
		return false
	}
	return strings.Contains(err.Error(), "slug")
}
