package strapi

import (
	"fmt"
	"strings"
)

// ContentEncoding renders plain text into one of the shapes a CMS content
// field may expect.
type ContentEncoding struct {
	Name   string
	Encode func(text string) any
}

var (
	// PlainText sends the content string as is.
	PlainText = ContentEncoding{Name: "plain", Encode: func(text string) any { return text }}

	// RichTextBlocks sends one paragraph block per line.
	RichTextBlocks = ContentEncoding{Name: "blocks", Encode: func(text string) any { return textToBlocks(text) }}

	// Wrapped sends {"data": content}.
	Wrapped = ContentEncoding{Name: "wrapped", Encode: func(text string) any { return map[string]string{"data": text} }}
)

// createEncodings is the order the create path tries; the first accepted wins.
var createEncodings = []ContentEncoding{PlainText, RichTextBlocks, Wrapped}

// updateEncodings is used when an update carries content.
var updateEncodings = []ContentEncoding{PlainText, RichTextBlocks}

func textToBlocks(text string) []RichTextBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]RichTextBlock, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, RichTextBlock{
			Type:     "paragraph",
			Children: []RichTextChild{{Type: "text", Text: line}},
		})
	}
	return blocks
}

// firstSuccess runs attempt for each strategy in order, one at a time, and
// returns the first result without error. When every strategy fails it
// returns the last error.
func firstSuccess[S, T any](strategies []S, attempt func(S) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for _, s := range strategies {
		out, err := attempt(s)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return zero, fmt.Errorf("strapi: no strategies to try")
	}
	if len(strategies) == 1 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("all %d content encodings rejected, last: %w", len(strategies), lastErr)
}
