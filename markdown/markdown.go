// Package markdown renders post bodies to sanitized HTML as templ components.
package markdown

import (
	"bytes"
	"context"
	stdhtml "html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML is passed through and cleaned by policy below.
			html.WithUnsafe(),
		),
	)
	policy    = newPolicy()
	stripTags = bluemonday.StripTagsPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	return p
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the sanitized HTML representation of content to buf.
func RenderMarkdown(buf *bytes.Buffer, content string) error {
	var raw bytes.Buffer
	if err := md.Convert([]byte(content), &raw); err != nil {
		return err
	}
	buf.Write(policy.SanitizeBytes(raw.Bytes()))
	return nil
}

// PlainText renders content and strips every tag, leaving the first max
// runes of text. Used for meta descriptions of posts without a summary.
func PlainText(content string, max int) string {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, content); err != nil {
		return ""
	}
	// The policy leaves entities escaped; callers escape for their own context.
	text := strings.Join(strings.Fields(stdhtml.UnescapeString(stripTags.Sanitize(buf.String()))), " ")
	if r := []rune(text); max > 0 && len(r) > max {
		return strings.TrimSpace(string(r[:max])) + "…"
	}
	return text
}
