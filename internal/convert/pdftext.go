package convert

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfToText extracts the embedded text layer of a PDF. Scanned or
// image-only PDFs have no text layer and are reported as extraction
// failures rather than returning an empty document.
func pdfToText(data []byte) ([]byte, *Error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e := newError(CodePDFExtractionFailed, http.StatusInternalServerError,
			"Failed to read PDF. The file may be corrupt or password-protected.")
		e.Details = err.Error()
		return nil, e
	}

	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			e := newError(CodePDFExtractionFailed, http.StatusInternalServerError,
				"Failed to extract text from PDF page %d.", i)
			e.Details = pageErr.Error()
			return nil, e
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	if len(parts) == 0 {
		return nil, newError(CodePDFExtractionFailed, http.StatusInternalServerError,
			"No extractable text found. The PDF may contain only scanned images.")
	}

	return []byte(strings.Join(parts, "\n\n")), nil
}
