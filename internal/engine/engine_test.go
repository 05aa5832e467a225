package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/justjobs360/fileconverter/internal/convert"
)

// loadedEngine returns an Engine whose lazy load is already satisfied with
// fake binary paths, so validation paths can be tested without ffmpeg.
func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	e.loadOnce.Do(func() {})
	e.ffmpegPath = "/usr/bin/ffmpeg"
	e.ffprobePath = "/usr/bin/ffprobe"
	e.workDir = t.TempDir()
	return e
}

func TestConvertValidation(t *testing.T) {
	e := loadedEngine(t)

	tests := []struct {
		name     string
		req      convert.Request
		wantCode string
	}{
		{
			name:     "empty data",
			req:      convert.Request{Filename: "a.mov", TargetFormat: "mp4"},
			wantCode: convert.CodeMissingParameters,
		},
		{
			name:     "missing target",
			req:      convert.Request{Filename: "a.mov", Data: []byte("x")},
			wantCode: convert.CodeMissingParameters,
		},
		{
			name:     "non-media target",
			req:      convert.Request{Filename: "a.mov", Data: []byte("x"), TargetFormat: "pdf"},
			wantCode: convert.CodeUnsupportedFormat,
		},
		{
			name:     "unknown target",
			req:      convert.Request{Filename: "a.mov", Data: []byte("x"), TargetFormat: "xyz"},
			wantCode: convert.CodeUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cerr := e.Convert(context.Background(), tt.req, nil)
			if cerr == nil {
				t.Fatal("expected error, got success")
			}
			if cerr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", cerr.Code, tt.wantCode)
			}
		})
	}
}

func TestConvertLoadFailureSticky(t *testing.T) {
	e := New()
	e.loadOnce.Do(func() {})
	e.loadErr = context.DeadlineExceeded // any non-nil load error

	for i := 0; i < 2; i++ {
		_, cerr := e.Convert(context.Background(), convert.Request{
			Filename:     "clip.mov",
			Data:         []byte("x"),
			TargetFormat: "mp4",
		}, nil)
		if cerr == nil || cerr.Code != convert.CodeConversionError {
			t.Fatalf("call %d: got %v, want CONVERSION_ERROR", i, cerr)
		}
	}
}

func TestTargetArgs(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"mp3", "libmp3lame"},
		{"mp4", "libx264"},
		{"webm", "libvpx-vp9"},
		{"ogg", "libvorbis"},
	}
	for _, tt := range tests {
		args := strings.Join(targetArgs(tt.target), " ")
		if !strings.Contains(args, tt.want) {
			t.Errorf("targetArgs(%q) = %q, want codec %q", tt.target, args, tt.want)
		}
	}
	if args := targetArgs("avi"); args != nil {
		t.Errorf("targetArgs(avi) = %v, want nil (default muxer)", args)
	}
}

func TestInputExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"clip.MOV", ".mov"},
		{"song.mp3", ".mp3"},
		{"noext", ".bin"},
		{"trailing.", ".bin"},
		{"a.b.mkv", ".mkv"},
	}
	for _, tt := range tests {
		if got := inputExtension(tt.filename); got != tt.want {
			t.Errorf("inputExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestTrackProgress(t *testing.T) {
	// 10s input reported at 2.5s, 5s, 10s.
	stream := strings.Join([]string{
		"frame=1",
		"out_time_us=2500000",
		"progress=continue",
		"out_time_us=5000000",
		"progress=continue",
		"out_time_us=10000000",
		"progress=end",
	}, "\n")

	var got []int
	trackProgress(strings.NewReader(stream), 10, func(p int) { got = append(got, p) })

	want := []int{32, 55, 100}
	if len(got) != len(want) {
		t.Fatalf("progress calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("progress[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Errorf("progress decreased: %v", got)
		}
	}
}

func TestTrackProgressUnknownDuration(t *testing.T) {
	var got []int
	trackProgress(strings.NewReader("out_time_us=1000000\n"), 0, func(p int) { got = append(got, p) })
	if len(got) != 0 {
		t.Errorf("progress reported without known duration: %v", got)
	}
}

func TestClassifyRun(t *testing.T) {
	tests := []struct {
		name     string
		stderr   string
		wantCode string
	}{
		{"oom", "x264 [error]: malloc of size failed: cannot allocate memory", convert.CodeMemoryError},
		{"generic", "Invalid data found when processing input", convert.CodeConversionError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cerr := classifyRun(context.Canceled, tt.stderr)
			if cerr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", cerr.Code, tt.wantCode)
			}
			if cerr.Details == "" {
				t.Error("expected stderr tail in details")
			}
		})
	}
}
