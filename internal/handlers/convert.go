package handlers

import (
	"net/http"
	"time"

	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/formats"
	"github.com/justjobs360/fileconverter/internal/logging"
	"github.com/justjobs360/fileconverter/internal/metrics"
	"github.com/justjobs360/fileconverter/internal/session"
)

// executorFunc adapts the per-path conversion entry points to a single
// shape for runExecutor.
type executorFunc func(req convert.Request) (*convert.Result, *convert.Error)

// runExecutor parses the upload, times the conversion, records metrics,
// and writes either the converted attachment or a structured error.
func (h *Handlers) runExecutor(w http.ResponseWriter, r *http.Request, executor string, fn executorFunc) {
	req, perr := h.parseUpload(w, r)
	if perr != nil {
		metrics.ConversionErrorsTotal.WithLabelValues(executor, perr.Code).Inc()
		h.writeError(w, perr)
		return
	}

	start := time.Now()
	res, cerr := fn(req)
	elapsed := time.Since(start).Seconds()

	if cerr != nil {
		metrics.ObserveConversion(executor, "error", elapsed, req.Size, 0)
		metrics.ConversionErrorsTotal.WithLabelValues(executor, cerr.Code).Inc()
		logging.Debug("%s conversion failed: %s (%s -> %s)", executor, cerr.Code, req.Filename, req.TargetFormat)
		h.writeError(w, cerr)
		return
	}

	metrics.ObserveConversion(executor, "success", elapsed, req.Size, int64(len(res.Bytes)))
	logging.Debug("%s conversion succeeded: %s -> %s (%d bytes in %.3fs)",
		executor, req.Filename, res.Filename, len(res.Bytes), elapsed)
	writeResult(w, res)
}

// ConvertImage handles POST /api/convert/images.
func (h *Handlers) ConvertImage(w http.ResponseWriter, r *http.Request) {
	h.runExecutor(w, r, "image", func(req convert.Request) (*convert.Result, *convert.Error) {
		return convert.ConvertImage(req, h.cfg.MaxUploadBytes)
	})
}

// ConvertDocument handles POST /api/convert/documents.
func (h *Handlers) ConvertDocument(w http.ResponseWriter, r *http.Request) {
	h.runExecutor(w, r, "document", func(req convert.Request) (*convert.Result, *convert.Error) {
		return convert.ConvertDocument(req, h.cfg.MaxUploadBytes)
	})
}

// ConvertImageToPDF handles POST /api/convert/pdf.
func (h *Handlers) ConvertImageToPDF(w http.ResponseWriter, r *http.Request) {
	h.runExecutor(w, r, "image-pdf", func(req convert.Request) (*convert.Result, *convert.Error) {
		return convert.ConvertImageToPDF(req, h.cfg.MaxUploadBytes)
	})
}

// ConvertVideo handles POST /api/convert/video. Server-side video
// conversion is capped at the media threshold; anything else is steered
// to the client engine.
func (h *Handlers) ConvertVideo(w http.ResponseWriter, r *http.Request) {
	h.runExecutor(w, r, "media-stub", func(req convert.Request) (*convert.Result, *convert.Error) {
		return convert.ConvertMediaStub(req, formats.CategoryVideo, h.cfg.MediaServerMaxBytes)
	})
}

// ConvertAudio handles POST /api/convert/audio.
func (h *Handlers) ConvertAudio(w http.ResponseWriter, r *http.Request) {
	h.runExecutor(w, r, "media-stub", func(req convert.Request) (*convert.Result, *convert.Error) {
		return convert.ConvertMediaStub(req, formats.CategoryAudio, h.cfg.MediaServerMaxBytes)
	})
}

// Convert handles POST /api/convert, the unified endpoint that detects
// the source format and routes to the right executor itself.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	req, perr := h.parseUpload(w, r)
	if perr != nil {
		h.writeError(w, perr)
		return
	}

	res, cerr := h.dispatcher.Convert(r.Context(), req, session.New())
	if cerr != nil {
		h.writeError(w, cerr)
		return
	}
	writeResult(w, res)
}
