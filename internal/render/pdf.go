package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// PDF exports rendered note HTML as an A4 PDF document using the
// wkhtmltopdf binary, which must be present on PATH.
type PDF struct {
}

func NewPDF() *PDF {
	return &PDF{}
}

// Export wraps the HTML fragment in a minimal printable document and runs
// it through wkhtmltopdf. The note title becomes both the document title
// and a heading above the body.
func (p *PDF) Export(ctx context.Context, title, body string) ([]byte, error) {
	generator, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("pdf generator init failed: %w", err)
	}

	generator.PageSize.Set(wkhtmltopdf.PageSizeA4)
	generator.Title.Set(title)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(exportDocument(title, body)))
	page.DisableExternalLinks.Set(true)
	page.LoadErrorHandling.Set("ignore")
	generator.AddPage(page)

	if err := generator.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("pdf creation failed: %w", err)
	}

	return generator.Bytes(), nil
}

// exportDocument builds the standalone HTML document handed to wkhtmltopdf.
// The body is already rendered, trusted HTML; only the title needs escaping.
func exportDocument(title, body string) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</title><style>
body { font-family: sans-serif; margin: 2cm; }
pre, code { font-family: monospace; background: #f4f4f4; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1em; color: #555; }
mark { background: #fff3a3; }
</style></head><body><h1>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</h1>`)
	b.WriteString(body)
	b.WriteString(`</body></html>`)

	return b.String()
}
