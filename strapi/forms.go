package strapi

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the same loose address check the forms use.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Entry identifies a record the CMS just created.
type Entry struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
}

func parseEntry(body []byte) Entry {
	data := gjson.GetBytes(body, "data")
	return Entry{ID: data.Get("id").Int(), DocumentID: data.Get("documentId").String()}
}

// Validate reports the first problem with a contact submission.
func (m ContactMessage) Validate() error {
	if blank(m.FirstName) || blank(m.LastName) || blank(m.Email) || blank(m.Subject) || blank(m.Message) {
		return &ValidationError{Field: "form", Message: "All fields are required"}
	}
	if !ValidEmail(strings.TrimSpace(m.Email)) {
		return &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	return nil
}

// SubmitContact stores a contact form message in the CMS.
func (c *Client) SubmitContact(ctx context.Context, m ContactMessage) (Entry, error) {
	if err := m.Validate(); err != nil {
		return Entry{}, err
	}
	body, err := c.Post(ctx, "/api/contacts", map[string]any{"data": m})
	if err != nil {
		return Entry{}, err
	}
	return parseEntry(body), nil
}

// Subscribe registers an email address for the newsletter.
func (c *Client) Subscribe(ctx context.Context, email string) (Entry, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Entry{}, required("email", "Email")
	}
	if !ValidEmail(email) {
		return Entry{}, &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	body, err := c.Post(ctx, "/api/newsletter-subscriptions", map[string]any{
		"data": map[string]string{"email": email},
	})
	if err != nil {
		return Entry{}, err
	}
	return parseEntry(body), nil
}

// FetchCategories lists the post categories.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	body, err := c.Get(ctx, "/api/categories")
	if err != nil {
		return nil, err
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, fmt.Errorf("fetch categories: %w", ErrUnexpectedResponse)
	}
	categories := make([]Category, 0, len(data.Array()))
	data.ForEach(func(_, item gjson.Result) bool {
		categories = append(categories, NormalizeCategory(item))
		return true
	})
	return categories, nil
}
