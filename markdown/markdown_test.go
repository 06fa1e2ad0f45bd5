package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPrepareSplitsLinesIntoParagraphs(t *testing.T) {
	got := Prepare("First line\nSecond line\n\n\n  Third  \n")
	want := "First line\n\nSecond line\n\nThird\n\n"
	if got != want {
		t.Errorf("Prepare() = %q, want %q", got, want)
	}
}

func TestPrepareKeepsFencedCode(t *testing.T) {
	input := "Intro\n```go\nfunc main() {\n\n    fmt.Println()\n}\n```\nOutro"
	got := Prepare(input)
	if !strings.Contains(got, "```go\nfunc main() {\n\n    fmt.Println()\n}\n```\n") {
		t.Errorf("fenced block altered: %q", got)
	}
	if !strings.HasSuffix(got, "Outro\n\n") {
		t.Errorf("text after fence should be a paragraph: %q", got)
	}
}

func TestToHTMLParagraphPerLine(t *testing.T) {
	got, err := ToHTML("Hello\nWorld")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "<p>") != 2 {
		t.Errorf("expected two paragraphs, got %q", got)
	}
	if !strings.Contains(got, "<p>Hello</p>") || !strings.Contains(got, "<p>World</p>") {
		t.Errorf("unexpected paragraphs: %q", got)
	}
}

func TestToHTMLInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"use `go test`", "<code>go test</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got, err := ToHTML(tt.input)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestToHTMLCodeBlockWithLanguage(t *testing.T) {
	got, err := ToHTML("```go\nfmt.Println(\"hello\")\n```")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<pre>") || !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should keep language class: %q", got)
	}
}

func TestToHTMLExternalLinks(t *testing.T) {
	got, err := ToHTML("[Go](https://go.dev)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `href="https://go.dev"`) || !strings.Contains(got, `target="_blank"`) {
		t.Errorf("external link should open in a new tab: %q", got)
	}
}

func TestToHTMLStripsUnsafeMarkup(t *testing.T) {
	tests := []string{
		"<script>alert(1)</script>",
		"Click <a href=\"javascript:alert(1)\">me</a>",
		"[x](javascript:alert(1))",
		"<img src=x onerror=alert(1)>",
	}
	for _, input := range tests {
		got, err := ToHTML(input)
		if err != nil {
			t.Fatal(err)
		}
		for _, bad := range []string{"<script", "javascript:", "onerror"} {
			if strings.Contains(got, bad) {
				t.Errorf("ToHTML(%q) = %q, contains %q", input, got, bad)
			}
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("One\nTwo").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<p>Two</p>") {
		t.Errorf("component output = %q", buf.String())
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("a\n\n  b \n\t\nc")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Paragraphs() = %q", got)
	}
}
