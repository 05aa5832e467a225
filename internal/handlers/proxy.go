package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/justjobs360/fileconverter/internal/logging"
	"github.com/justjobs360/fileconverter/internal/metrics"
	"github.com/justjobs360/fileconverter/internal/streaming"
	"github.com/justjobs360/fileconverter/internal/workers"
)

// proxyClient fetches remote files for the relay endpoint. Redirects are
// followed by default; the overall deadline bounds slow origins.
var proxyClient = &http.Client{
	Timeout:   2 * time.Minute,
	Transport: proxyTransport(),
}

// proxyTransport caps concurrent connections per origin at the I/O worker
// count so one slow origin cannot soak the process.
func proxyTransport() *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxConnsPerHost = workers.ForIO(0)
	return tr
}

// proxyRequest is the JSON body for POST /api/proxy.
type proxyRequest struct {
	URL string `json:"url"`
}

// Validate checks that the URL is present, well-formed, and uses an HTTP
// scheme. file:// and friends are rejected before any fetch happens.
func (p proxyRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.URL,
			validation.Required,
			is.URL,
			validation.By(func(value interface{}) error {
				u, err := url.Parse(value.(string))
				if err != nil {
					return err
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return validation.NewError("validation_scheme", "must be an http or https URL")
				}
				return nil
			}),
		),
	)
}

// ProxyFile handles POST /api/proxy: fetches a remote file and relays it
// to the browser so cross-origin files can be fed to the client engine.
func (h *Handlers) ProxyFile(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("bad_request").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"error": "Request body must be JSON with a url field"})
		return
	}

	if err := req.Validate(); err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("bad_request").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodGet, req.URL, nil)
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("bad_request").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"error": "Invalid URL"})
		return
	}

	resp, err := proxyClient.Do(upstream)
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("upstream_error").Inc()
		logging.Warn("proxy fetch failed for %s: %v", req.URL, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		writeJSON(w, map[string]string{"error": "Failed to fetch the remote file"})
		return
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Debug("failed to close proxy response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// Pass the origin's status through so the client can tell a 404
		// from a flaky origin.
		metrics.ProxyRequestsTotal.WithLabelValues("upstream_error").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		writeJSON(w, map[string]string{"error": "Failed to fetch URL: " + resp.Status})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	// The origin's disposition carries the real filename; the URL basename
	// is only a guess for origins that omit the header.
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		w.Header().Set("Content-Disposition", cd)
	} else if name := remoteFilename(req.URL); name != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}

	relayed, err := streaming.StreamWithTimeout(r.Context(), w, resp.Body, streaming.DefaultTimeoutWriterConfig())
	metrics.ProxyBytesRelayed.Add(float64(relayed))
	if err != nil {
		// Headers are already out; all we can do is account for it.
		metrics.ProxyRequestsTotal.WithLabelValues("relay_error").Inc()
		logging.Debug("proxy relay interrupted after %d bytes: %v", relayed, err)
		return
	}
	metrics.ProxyRequestsTotal.WithLabelValues("success").Inc()
}

// remoteFilename extracts a safe basename from the fetched URL path.
func remoteFilename(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return ""
	}
	return strings.ReplaceAll(name, `"`, "")
}
