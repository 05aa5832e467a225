package convert

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFontSize   = 12
	pdfLineHeight = 5.5 // mm, for a 12pt core font
	pdfMargin     = 15  // mm
)

// textToPDF lays plain text out on A4 pages with word wrapping and
// automatic pagination.
func textToPDF(data []byte) ([]byte, *Error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetFont("Helvetica", "", pdfFontSize)
	doc.AddPage()

	// Core PDF fonts are cp1252; translate what we can and let the rest
	// degrade to the replacement character.
	translate := doc.UnicodeTranslatorFromDescriptor("")

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			doc.Ln(pdfLineHeight)
			continue
		}
		// MultiCell wraps on word boundaries and paginates for us.
		doc.MultiCell(0, pdfLineHeight, translate(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		e := newError(CodeProcessingError, http.StatusInternalServerError,
			"Failed to generate PDF from text.")
		e.Details = err.Error()
		return nil, e
	}
	return buf.Bytes(), nil
}
