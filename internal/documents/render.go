// Package documents renders conversation text into downloadable formats.
// Each renderer is deterministic: same content in, same bytes out.
package documents

import (
	"bytes"
	"fmt"
	"time"

	docx "github.com/fumiama/go-docx"
	"github.com/jung-kurt/gofpdf"
)

// Content types served with each export.
const (
	ContentTypeText     = "text/plain; charset=utf-8"
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypePDF      = "application/pdf"
	ContentTypeDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Text passes the content through unchanged.
func Text(content string) []byte {
	return []byte(content)
}

// Markdown passes the content through unchanged; the caller controls the
// content type and extension.
func Markdown(content string) []byte {
	return []byte(content)
}

// PDF lays the content out as 12pt body text on A4 pages.
func PDF(content string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pin the embedded creation date so identical content yields
	// identical bytes.
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, content, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Docx wraps the content in a single-paragraph word-processor document.
func Docx(content string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(content)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}
