package convert

import (
	"net/http"
	"strings"

	"github.com/justjobs360/fileconverter/internal/formats"
)

// docPair identifies one entry in the fixed table of implemented document
// conversions.
type docPair struct {
	source string
	target string
}

// docConversions is the fixed dispatch table. A pair missing here is either
// rejected as unsupported (target outside the document family) or reported
// as not yet implemented, never attempted half-way.
var docConversions = map[docPair]func(data []byte) ([]byte, *Error){
	{"pdf", "txt"}:  pdfToText,
	{"pdf", "rtf"}:  pdfToRTF,
	{"txt", "pdf"}:  textToPDF,
	{"txt", "rtf"}:  textToRTF,
	{"rtf", "txt"}:  rtfToText,
	{"rtf", "pdf"}:  rtfToPDF,
	{"docx", "txt"}: docxToText,
	{"docx", "pdf"}: docxToPDF,
	{"docx", "rtf"}: docxToRTF,
}

// detectDocumentSource resolves the uploaded file to a document format id
// from its declared MIME type or filename suffix. Returns "" for anything
// outside the document family.
func detectDocumentSource(filename, mimeType string) string {
	lowerName := strings.ToLower(filename)
	switch {
	case strings.Contains(mimeType, "pdf") || strings.HasSuffix(lowerName, ".pdf"):
		return "pdf"
	case strings.Contains(mimeType, "wordprocessingml") || strings.HasSuffix(lowerName, ".docx"):
		return "docx"
	case strings.Contains(mimeType, "text/plain") || strings.HasSuffix(lowerName, ".txt"):
		return "txt"
	case strings.Contains(mimeType, "rtf") || strings.HasSuffix(lowerName, ".rtf"):
		return "rtf"
	}
	return ""
}

// ConvertDocument converts between the document formats (pdf, docx, txt,
// rtf) according to the fixed conversion table.
func ConvertDocument(req Request, maxBytes int64) (*Result, *Error) {
	if len(req.Data) == 0 || req.TargetFormat == "" {
		return nil, errMissingParameters()
	}

	if req.Size > maxBytes {
		return nil, errTooLarge(req.Size, maxBytes, false)
	}

	source := detectDocumentSource(req.Filename, req.MIMEType)
	if source == "" {
		return nil, newError(CodeInvalidFileType, http.StatusBadRequest,
			"Unsupported file type for document conversion")
	}

	target := formats.Normalize(req.TargetFormat)
	if formats.CategoryOf(target) != formats.CategoryDocument {
		return nil, newError(CodeUnsupportedConversion, http.StatusBadRequest,
			"Unsupported conversion: %s to %s", strings.ToUpper(source), strings.ToUpper(target))
	}

	// Same-format requests pass the bytes through untouched.
	if source == target {
		return &Result{
			Bytes:       req.Data,
			ContentType: formats.MIMEForTarget(target),
			Filename:    formats.OutputFilename(req.Filename, target),
		}, nil
	}

	fn, ok := docConversions[docPair{source, target}]
	if !ok {
		return nil, newError(CodeNotImplemented, http.StatusNotImplemented,
			"%s to %s conversion is not yet implemented", strings.ToUpper(source), strings.ToUpper(target))
	}

	out, cerr := fn(req.Data)
	if cerr != nil {
		return nil, cerr
	}

	return &Result{
		Bytes:       out,
		ContentType: formats.MIMEForTarget(target),
		Filename:    formats.OutputFilename(req.Filename, target),
	}, nil
}

// Composed conversions reuse the primitive steps; a failure in the first
// step propagates unchanged so the caller sees the extraction error.

func pdfToRTF(data []byte) ([]byte, *Error) {
	text, err := pdfToText(data)
	if err != nil {
		return nil, err
	}
	return textToRTF(text)
}

func rtfToPDF(data []byte) ([]byte, *Error) {
	text, err := rtfToText(data)
	if err != nil {
		return nil, err
	}
	return textToPDF(text)
}

func docxToPDF(data []byte) ([]byte, *Error) {
	text, err := docxToText(data)
	if err != nil {
		return nil, err
	}
	return textToPDF(text)
}

func docxToRTF(data []byte) ([]byte, *Error) {
	text, err := docxToText(data)
	if err != nil {
		return nil, err
	}
	return textToRTF(text)
}
