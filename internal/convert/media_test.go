package convert

import (
	"net/http"
	"testing"

	"github.com/justjobs360/fileconverter/internal/formats"
)

const testMediaLimit = 4 * 1024 * 1024

func TestConvertMediaStub(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		category    formats.Category
		wantCode    string
		wantStatus  int
		wantRetry   bool
		wantMaxSize int64
	}{
		{
			name:       "missing parameters",
			req:        Request{},
			category:   formats.CategoryVideo,
			wantCode:   CodeMissingParameters,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "audio upload on video endpoint",
			req: Request{
				Filename:     "track.mp3",
				MIMEType:     "audio/mpeg",
				Size:         100,
				Data:         []byte("x"),
				TargetFormat: "mp4",
			},
			category:   formats.CategoryVideo,
			wantCode:   CodeInvalidFileType,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unsupported video target",
			req: Request{
				Filename:     "clip.mov",
				MIMEType:     "video/quicktime",
				Size:         100,
				Data:         []byte("x"),
				TargetFormat: "wmv",
			},
			category:   formats.CategoryVideo,
			wantCode:   CodeUnsupportedFormat,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "oversize flags client retry",
			req: Request{
				Filename:     "clip.mov",
				MIMEType:     "video/quicktime",
				Size:         testMediaLimit + 1,
				Data:         []byte("x"),
				TargetFormat: "mp4",
			},
			category:    formats.CategoryVideo,
			wantCode:    CodeFileTooLarge,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantRetry:   true,
			wantMaxSize: testMediaLimit,
		},
		{
			name: "valid request still routes to client",
			req: Request{
				Filename:     "clip.mov",
				MIMEType:     "video/quicktime",
				Size:         100,
				Data:         []byte("x"),
				TargetFormat: "mp4",
			},
			category:   formats.CategoryVideo,
			wantCode:   CodeServerSideUnavailable,
			wantStatus: http.StatusNotImplemented,
			wantRetry:  true,
		},
		{
			name: "valid audio request",
			req: Request{
				Filename:     "track.wav",
				MIMEType:     "audio/wav",
				Size:         100,
				Data:         []byte("x"),
				TargetFormat: "mp3",
			},
			category:   formats.CategoryAudio,
			wantCode:   CodeServerSideUnavailable,
			wantStatus: http.StatusNotImplemented,
			wantRetry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, cerr := ConvertMediaStub(tt.req, tt.category, testMediaLimit)
			if result != nil {
				t.Fatal("media stub must never return a payload")
			}
			if cerr == nil {
				t.Fatal("expected an error outcome")
			}
			if cerr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", cerr.Code, tt.wantCode)
			}
			if cerr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", cerr.Status, tt.wantStatus)
			}
			if cerr.RetryClient != tt.wantRetry {
				t.Errorf("RetryClient = %v, want %v", cerr.RetryClient, tt.wantRetry)
			}
			if tt.wantMaxSize != 0 && cerr.MaxSize != tt.wantMaxSize {
				t.Errorf("MaxSize = %d, want %d", cerr.MaxSize, tt.wantMaxSize)
			}
		})
	}
}
