package convert

import (
	"net/http"
	"strings"

	"github.com/justjobs360/fileconverter/internal/formats"
)

// ConvertMediaStub validates a server-side media conversion request and
// always reports SERVER_SIDE_UNAVAILABLE: the hosting platform has no
// transcoder, so valid requests are redirected to the in-process media
// engine via the RetryClient flag. category selects video or audio
// validation rules.
func ConvertMediaStub(req Request, category formats.Category, serverMax int64) (*Result, *Error) {
	if len(req.Data) == 0 || req.TargetFormat == "" {
		return nil, errMissingParameters()
	}

	prefix := string(category) + "/"
	if !strings.HasPrefix(req.MIMEType, prefix) {
		return nil, newError(CodeInvalidFileType, http.StatusBadRequest,
			"Only %s files are supported by this endpoint", category)
	}

	target := formats.Normalize(req.TargetFormat)
	if formats.CategoryOf(target) != category {
		supported := supportedMediaTargets(category)
		return nil, newError(CodeUnsupportedFormat, http.StatusBadRequest,
			"Unsupported %s format: %s. Supported formats are: %s",
			category, req.TargetFormat, strings.ToUpper(strings.Join(supported, ", ")))
	}

	if req.Size > serverMax {
		return nil, errTooLarge(req.Size, serverMax, true)
	}

	e := newError(CodeServerSideUnavailable, http.StatusNotImplemented,
		"Server-side %s conversion is currently not available. %s conversions are processed client-side for better performance and to handle larger files.",
		category, strings.ToUpper(string(category)[:1])+string(category)[1:])
	e.RetryClient = true
	return nil, e
}

func supportedMediaTargets(category formats.Category) []string {
	var out []string
	for _, f := range formats.All {
		if f.Category == category {
			out = append(out, f.ID)
		}
	}
	return out
}
