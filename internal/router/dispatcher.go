package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/engine"
	"github.com/justjobs360/fileconverter/internal/formats"
	"github.com/justjobs360/fileconverter/internal/logging"
	"github.com/justjobs360/fileconverter/internal/session"
)

// Outcome is the neutral result of one executor invocation. Exactly one of
// Result and Err is set; RetryOnClient marks failures the media engine
// should absorb instead of surfacing.
type Outcome struct {
	Result        *convert.Result
	RetryOnClient bool
	Err           *convert.Error
}

func outcomeFrom(res *convert.Result, cerr *convert.Error) Outcome {
	return Outcome{
		Result:        res,
		RetryOnClient: cerr != nil && cerr.RetryClient,
		Err:           cerr,
	}
}

// Dispatcher routes conversion requests to the executors and the media
// engine, driving the session state machine along the way.
type Dispatcher struct {
	limits Limits
	engine *engine.Engine
}

// NewDispatcher builds a Dispatcher. The engine may be nil; media
// conversions then surface the server stub's decline unchanged.
func NewDispatcher(limits Limits, eng *engine.Engine) *Dispatcher {
	return &Dispatcher{limits: limits, engine: eng}
}

// Convert detects the source format, routes, and runs the chosen executor.
// A MediaServer decline or failure falls back to the in-process engine.
// The session (optional) moves uploading → converting → success|error; a
// new call on the same session supersedes any in-flight attempt.
func (d *Dispatcher) Convert(ctx context.Context, req convert.Request, sess *session.Session) (*convert.Result, *convert.Error) {
	if sess == nil {
		sess = session.New()
	}
	ctx, token := sess.Start(ctx)

	if req.Size == 0 {
		req.Size = int64(len(req.Data))
	}
	source := formats.Detect(req.Filename, req.MIMEType)
	target := formats.Normalize(req.TargetFormat)

	path := Route(source, target, req.Size, d.limits)
	logging.Debug("Routing %s (%s, %d bytes) -> %s via %s",
		req.Filename, source, req.Size, target, path)

	sess.Converting(token)

	var out Outcome
	switch path {
	case DocumentServer:
		out = outcomeFrom(convert.ConvertDocument(req, d.limits.MaxUploadBytes))
	case ImageToPDFServer:
		out = outcomeFrom(convert.ConvertImageToPDF(req, d.limits.MaxUploadBytes))
	case ImageServer:
		out = outcomeFrom(convert.ConvertImage(req, d.limits.MaxUploadBytes))
	case MediaServer:
		out = outcomeFrom(convert.ConvertMediaStub(req, formats.CategoryOf(source), d.limits.MediaServerMaxBytes))
		if out.RetryOnClient {
			logging.Debug("Media server declined %s, falling back to engine", req.Filename)
			out = d.runEngine(ctx, req, sess, token)
		}
	case MediaClient:
		out = d.runEngine(ctx, req, sess, token)
	default:
		name := source
		if name == "" {
			name = req.Filename
		}
		out = Outcome{Err: &convert.Error{
			Code:    convert.CodeUnsupportedFormat,
			Message: fmt.Sprintf("Unsupported file format: %s", name),
			Status:  http.StatusBadRequest,
		}}
	}

	if out.Err != nil {
		sess.Fail(token, out.Err)
		return nil, out.Err
	}
	sess.Succeed(token)
	return out.Result, nil
}

// runEngine executes the media engine, feeding its progress into the
// session.
func (d *Dispatcher) runEngine(ctx context.Context, req convert.Request, sess *session.Session, token uint64) Outcome {
	if d.engine == nil {
		return Outcome{Err: &convert.Error{
			Code:    convert.CodeServerSideUnavailable,
			Message: "Media conversion is not available on this deployment.",
			Status:  http.StatusNotImplemented,
		}}
	}
	res, cerr := d.engine.Convert(ctx, req, func(percent int) {
		sess.Progress(token, percent)
	})
	return Outcome{Result: res, Err: cerr}
}
