package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/logging"
)

// formOverheadBytes is the multipart framing allowance on top of the
// configured file ceiling.
const formOverheadBytes = 10 * 1024

// errorResponse is the wire shape of every failed conversion.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`

	// UseClientSide tells the UI to retry with the in-browser engine.
	UseClientSide bool `json:"useClientSide,omitempty"`

	// MaxSize carries the applicable ceiling for too-large rejections.
	MaxSize int64 `json:"maxSize,omitempty"`
}

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeError renders a structured conversion error. Internal details are
// withheld in production.
func (h *Handlers) writeError(w http.ResponseWriter, cerr *convert.Error) {
	resp := errorResponse{
		Error:         cerr.Message,
		Code:          cerr.Code,
		UseClientSide: cerr.RetryClient,
		MaxSize:       cerr.MaxSize,
	}
	if !h.cfg.IsProduction() {
		resp.Details = cerr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(cerr.Status)
	writeJSON(w, resp)
}

// writeResult sends converted bytes as a download attachment.
func writeResult(w http.ResponseWriter, res *convert.Result) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Bytes)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Bytes); err != nil {
		logging.Debug("failed to write conversion result: %v", err)
	}
}

// parseUpload extracts the conversion request from a multipart form with
// fields "file", "format", and optional "quality". The body is capped
// before parsing so an oversized upload never buffers fully.
func (h *Handlers) parseUpload(w http.ResponseWriter, r *http.Request) (convert.Request, *convert.Error) {
	limit := h.cfg.MaxUploadBytes + formOverheadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return convert.Request{}, &convert.Error{
				Code: convert.CodeFileTooLarge,
				Message: fmt.Sprintf("File exceeds the maximum allowed size of %.2fMB",
					float64(h.cfg.MaxUploadBytes)/(1024*1024)),
				Status:  http.StatusRequestEntityTooLarge,
				MaxSize: h.cfg.MaxUploadBytes,
			}
		}
		return convert.Request{}, &convert.Error{
			Code:    convert.CodeInvalidRequest,
			Message: "Request must be multipart/form-data with a file field",
			Status:  http.StatusBadRequest,
			Details: err.Error(),
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return convert.Request{}, &convert.Error{
			Code:    convert.CodeMissingParameters,
			Message: "File and format are required",
			Status:  http.StatusBadRequest,
		}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Debug("failed to close upload: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return convert.Request{}, &convert.Error{
			Code:    convert.CodeProcessingError,
			Message: "Failed to read uploaded file",
			Status:  http.StatusInternalServerError,
			Details: err.Error(),
		}
	}

	req := convert.Request{
		Filename:     header.Filename,
		MIMEType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Data:         data,
		TargetFormat: strings.TrimSpace(r.FormValue("format")),
	}

	if q := r.FormValue("quality"); q != "" {
		if quality, err := strconv.Atoi(q); err == nil {
			req.Quality = quality
		}
	}

	return req, nil
}
