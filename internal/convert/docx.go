package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
)

// docxToText extracts the raw text of a DOCX file by reading
// word/document.xml from the OOXML archive. Paragraphs become newlines and
// explicit tabs are preserved; all styling is discarded.
func docxToText(data []byte) ([]byte, *Error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e := newError(CodeDocxExtractionFailed, http.StatusInternalServerError,
			"Failed to read DOCX. The file may be corrupt or not a DOCX document.")
		e.Details = err.Error()
		return nil, e
	}

	var docXML io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			break
		}
	}
	if docXML == nil || err != nil {
		return nil, newError(CodeDocxExtractionFailed, http.StatusInternalServerError,
			"DOCX archive has no word/document.xml part.")
	}
	defer func() { _ = docXML.Close() }()

	text, err := extractDocumentXML(docXML)
	if err != nil {
		e := newError(CodeDocxExtractionFailed, http.StatusInternalServerError,
			"Failed to parse DOCX document body.")
		e.Details = err.Error()
		return nil, e
	}

	return []byte(text), nil
}

// extractDocumentXML walks the WordprocessingML token stream collecting
// text runs. Only w:t content is document text; w:p boundaries map to
// newlines, w:tab and w:br to their whitespace equivalents.
func extractDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var b strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
