package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justjobs360/fileconverter/internal/workers"
)

func proxyRequestBody(t *testing.T, url string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(body)
}

func TestProxyRelaysFile(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write([]byte("fake-png-bytes")); err != nil {
			t.Error(err)
		}
	}))
	defer upstream.Close()

	h := testHandlers(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/proxy", proxyRequestBody(t, upstream.URL+"/files/photo.png"))
	rec := httptest.NewRecorder()

	h.ProxyFile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "photo.png") {
		t.Errorf("Content-Disposition = %q, want photo.png basename", cd)
	}
	if rec.Body.String() != "fake-png-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestProxyForwardsUpstreamDisposition(t *testing.T) {
	// A download URL whose path has no extension; the origin's header is
	// the only place the real filename lives.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		if _, err := w.Write([]byte("%PDF-1.4")); err != nil {
			t.Error(err)
		}
	}))
	defer upstream.Close()

	h := testHandlers(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/proxy", proxyRequestBody(t, upstream.URL+"/download?id=123"))
	rec := httptest.NewRecorder()

	h.ProxyFile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report.pdf") {
		t.Errorf("Content-Disposition = %q, want upstream filename report.pdf", cd)
	}
}

func TestProxyPassesThroughUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	h := testHandlers(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/proxy", proxyRequestBody(t, upstream.URL+"/missing"))
	rec := httptest.NewRecorder()

	h.ProxyFile(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 passed through", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp["error"], "Failed to fetch URL") {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestProxyRejectsNonHTTPScheme(t *testing.T) {
	h := testHandlers(testConfig())

	for _, url := range []string{"ftp://host/file.png", "file:///etc/passwd", "not a url", ""} {
		req := httptest.NewRequest(http.MethodPost, "/api/proxy", proxyRequestBody(t, url))
		rec := httptest.NewRecorder()

		h.ProxyFile(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("url %q: status = %d, want 400", url, rec.Code)
		}
	}
}

func TestProxyTransportCapsConnections(t *testing.T) {
	tr := proxyTransport()
	if want := workers.ForIO(0); tr.MaxConnsPerHost != want {
		t.Errorf("MaxConnsPerHost = %d, want %d", tr.MaxConnsPerHost, want)
	}
}

func TestRemoteFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/files/photo.png", "photo.png"},
		{"https://example.com/download?id=123", "download"},
		{"https://example.com/", ""},
		{"https://example.com", ""},
	}
	for _, tt := range tests {
		if got := remoteFilename(tt.url); got != tt.want {
			t.Errorf("remoteFilename(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
