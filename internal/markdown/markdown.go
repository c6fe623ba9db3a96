// Package markdown renders post bodies to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultLanguage tags code blocks that declare no language.
const DefaultLanguage = "plaintext"

// Converter turns Markdown into HTML with GFM tables, hard line breaks and
// client-side-highlighter friendly code blocks.
type Converter struct {
	md goldmark.Markdown
}

// New returns a Converter. It is safe for sequential reuse across posts.
func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{}, 200)),
		),
	)
	return &Converter{md: md}
}

// Render converts body and normalizes any code markup left in raw HTML.
func (c *Converter) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return NormalizeCodeBlocks(buf.String()), nil
}
