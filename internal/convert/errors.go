package convert

import (
	"fmt"
	"net/http"
	"strings"
)

// Machine-readable error codes surfaced to callers. The UI and the router
// branch on these, so they are part of the API contract.
const (
	CodeMissingParameters     = "MISSING_PARAMETERS"
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidFileType       = "INVALID_FILE_TYPE"
	CodeInvalidImageFormat    = "INVALID_IMAGE_FORMAT"
	CodeUnsupportedFormat     = "UNSUPPORTED_FORMAT"
	CodeUnsupportedConversion = "UNSUPPORTED_CONVERSION"
	CodeNotImplemented        = "NOT_IMPLEMENTED"
	CodeFileTooLarge          = "FILE_TOO_LARGE"
	CodeImageTooLarge         = "IMAGE_TOO_LARGE"
	CodeSVGProcessingError    = "SVG_PROCESSING_ERROR"
	CodeRasterToSVG           = "RASTER_TO_SVG_UNSUPPORTED"
	CodePDFExtractionFailed   = "PDF_EXTRACTION_FAILED"
	CodeDocxExtractionFailed  = "DOCX_EXTRACTION_FAILED"
	CodeServerSideUnavailable = "SERVER_SIDE_UNAVAILABLE"
	CodeTimeout               = "TIMEOUT"
	CodeMemoryError           = "MEMORY_ERROR"
	CodeProcessingError       = "PROCESSING_ERROR"
	CodeConversionError       = "CONVERSION_ERROR"
)

// Error is the structured failure every executor returns. Validation
// failures are produced before any conversion primitive runs; primitive
// failures are re-classified into this taxonomy rather than propagated raw.
type Error struct {
	Code    string
	Message string
	Status  int
	Details string

	// RetryClient signals that the caller should fall back to the
	// in-process media engine instead of surfacing the error.
	RetryClient bool

	// MaxSize carries the applicable size ceiling for FILE_TOO_LARGE
	// responses so clients can explain the limit.
	MaxSize int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newError builds an Error with the given code, status, and message.
func newError(code string, status int, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
	}
}

// errMissingParameters is returned when file or format is absent.
func errMissingParameters() *Error {
	return newError(CodeMissingParameters, http.StatusBadRequest, "File and format are required")
}

// errTooLarge classifies an oversize upload, carrying the ceiling that was
// exceeded. retryClient marks media uploads that the client engine can
// still handle.
func errTooLarge(size, limit int64, retryClient bool) *Error {
	e := newError(CodeFileTooLarge, http.StatusRequestEntityTooLarge,
		"File size (%.2fMB) exceeds the maximum allowed size of %.2fMB",
		float64(size)/(1024*1024), float64(limit)/(1024*1024))
	e.RetryClient = retryClient
	e.MaxSize = limit
	if retryClient {
		e.Message += " for server-side conversion. Large files are automatically processed client-side."
	} else {
		e.Message += ". Please use a smaller file or compress it first."
	}
	return e
}

// Classify maps an arbitrary primitive failure into the taxonomy. Exposed
// for the media engine, which shares the error contract.
func Classify(err error) *Error {
	return classify(err)
}

// classify maps an unrecognized primitive failure into the taxonomy using
// the same message heuristics the conversion libraries emit.
func classify(err error) *Error {
	if err == nil {
		return nil
	}
	if cerr, ok := err.(*Error); ok {
		return cerr
	}

	msg := err.Error()
	switch {
	case containsAny(msg, "context deadline exceeded", "timeout", "timed out"):
		e := newError(CodeTimeout, http.StatusGatewayTimeout,
			"Conversion timed out. The file may be too large or complex. Please try a smaller file.")
		e.Details = msg
		return e
	case containsAny(msg, "cannot allocate memory", "out of memory", "too large"):
		e := newError(CodeMemoryError, http.StatusRequestEntityTooLarge,
			"File is too large to process. Please resize or compress it before conversion.")
		e.Details = msg
		return e
	default:
		e := newError(CodeConversionError, http.StatusInternalServerError,
			"Conversion failed. Please ensure the file is valid and try again.")
		e.Details = msg
		return e
	}
}

func containsAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
