// Package markdown renders post bodies as sanitized HTML templ components.
//
// Post content arrives from the CMS as plain text in which every line is a
// paragraph. Lines are kept as paragraphs, fenced code blocks are preserved,
// and inline Markdown (emphasis, links, code spans) is rendered by goldmark.
package markdown

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	converter = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy    = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := ToHTML(content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// ToHTML converts content to sanitized HTML.
func ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(Prepare(content)), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Prepare rewrites plain text so that each non-blank line outside a fenced
// code block becomes its own Markdown paragraph.
func Prepare(content string) string {
	var b strings.Builder
	fence := ""
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			b.WriteString(line)
			b.WriteByte('\n')
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
				b.WriteByte('\n')
			}
			continue
		}
		if f := fenceMarker(trimmed); f != "" {
			fence = f
			b.WriteString(trimmed)
			b.WriteByte('\n')
			continue
		}
		if trimmed == "" {
			continue
		}
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}
	return b.String()
}

func fenceMarker(line string) string {
	for _, f := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, f) {
			n := len(line) - len(strings.TrimLeft(line, f[:1]))
			return strings.Repeat(f[:1], n)
		}
	}
	return ""
}

// Paragraphs splits plain text into its non-blank lines, trimmed.
func Paragraphs(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}
