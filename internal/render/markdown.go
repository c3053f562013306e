// Package render converts note text into presentation formats: markdown to
// HTML for the browser and HTML to PDF for export.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders note text to HTML with GitHub-flavored extensions.
// Single newlines become hard breaks, matching how the note editor treats
// them. Raw HTML in note text is NOT passed through.
type Markdown struct {
	converter goldmark.Markdown
}

// NewMarkdown builds the shared markdown converter. The returned value is
// safe for concurrent use.
func NewMarkdown() *Markdown {
	return &Markdown{
		converter: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithXHTML(),
			),
		),
	}
}

// Render converts markdown text to an HTML fragment.
func (m *Markdown) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := m.converter.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}

	return buf.String(), nil
}
