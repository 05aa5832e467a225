package router

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/session"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestDispatchImageConversion(t *testing.T) {
	d := NewDispatcher(DefaultLimits(), nil)
	sess := session.New()

	data := testPNG(t)
	res, cerr := d.Convert(context.Background(), convert.Request{
		Filename:     "photo.png",
		MIMEType:     "image/png",
		Data:         data,
		TargetFormat: "jpg",
	}, sess)
	if cerr != nil {
		t.Fatalf("Convert: %v", cerr)
	}
	if res.ContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", res.ContentType)
	}
	if res.Filename != "photo.jpg" {
		t.Errorf("filename = %q, want photo.jpg", res.Filename)
	}
	if got := sess.Status(); got.State != session.StateSuccess || got.Progress != 100 {
		t.Errorf("session = %+v, want success/100", got)
	}
}

func TestDispatchOversizeShortCircuits(t *testing.T) {
	d := NewDispatcher(DefaultLimits(), nil)

	// 10MB declared size with a tiny valid payload: the size check must
	// fire before any image primitive touches the bytes.
	_, cerr := d.Convert(context.Background(), convert.Request{
		Filename:     "image.png",
		MIMEType:     "image/png",
		Size:         10 << 20,
		Data:         testPNG(t),
		TargetFormat: "png",
	}, nil)
	if cerr == nil {
		t.Fatal("expected FILE_TOO_LARGE")
	}
	if cerr.Code != convert.CodeFileTooLarge {
		t.Errorf("code = %s, want FILE_TOO_LARGE", cerr.Code)
	}
	if cerr.Status != 413 {
		t.Errorf("status = %d, want 413", cerr.Status)
	}
}

func TestDispatchUnsupportedFormat(t *testing.T) {
	d := NewDispatcher(DefaultLimits(), nil)
	sess := session.New()

	res, cerr := d.Convert(context.Background(), convert.Request{
		Filename:     "data.xyz",
		MIMEType:     "application/octet-stream",
		Data:         []byte("payload"),
		TargetFormat: "mp4",
	}, sess)
	if res != nil {
		t.Fatal("unsupported format produced output")
	}
	if cerr == nil || cerr.Code != convert.CodeUnsupportedFormat {
		t.Fatalf("got %v, want UNSUPPORTED_FORMAT", cerr)
	}
	if got := sess.Status().State; got != session.StateError {
		t.Errorf("session state = %s, want error", got)
	}
}

func TestDispatchDocumentPair(t *testing.T) {
	d := NewDispatcher(DefaultLimits(), nil)

	res, cerr := d.Convert(context.Background(), convert.Request{
		Filename:     "notes.txt",
		MIMEType:     "text/plain",
		Data:         []byte("hello dispatcher"),
		TargetFormat: "rtf",
	}, nil)
	if cerr != nil {
		t.Fatalf("Convert: %v", cerr)
	}
	if res.Filename != "notes.rtf" {
		t.Errorf("filename = %q, want notes.rtf", res.Filename)
	}
	if !bytes.HasPrefix(res.Bytes, []byte(`{\rtf1`)) {
		t.Error("output is not RTF")
	}
}

func TestDispatchMediaFallbackWithoutEngine(t *testing.T) {
	d := NewDispatcher(DefaultLimits(), nil)
	sess := session.New()

	// Small media file: stub declines with retry-on-client, and with no
	// engine wired the decline surfaces as unavailable.
	_, cerr := d.Convert(context.Background(), convert.Request{
		Filename:     "clip.mov",
		MIMEType:     "video/quicktime",
		Data:         bytes.Repeat([]byte("v"), 1024),
		TargetFormat: "mp4",
	}, sess)
	if cerr == nil || cerr.Code != convert.CodeServerSideUnavailable {
		t.Fatalf("got %v, want SERVER_SIDE_UNAVAILABLE", cerr)
	}
	if got := sess.Status().State; got != session.StateError {
		t.Errorf("session state = %s, want error", got)
	}
}

func TestDispatchSupersedesPriorAttempt(t *testing.T) {
	d := NewDispatcher(DefaultLimits(), nil)
	sess := session.New()

	ctx1, _ := sess.Start(context.Background())

	_, cerr := d.Convert(context.Background(), convert.Request{
		Filename:     "notes.txt",
		MIMEType:     "text/plain",
		Data:         []byte("second attempt"),
		TargetFormat: "rtf",
	}, sess)
	if cerr != nil {
		t.Fatalf("Convert: %v", cerr)
	}

	select {
	case <-ctx1.Done():
	default:
		t.Error("prior attempt's context survived a new dispatch")
	}
	if got := sess.Status().State; got != session.StateSuccess {
		t.Errorf("session state = %s, want success", got)
	}
}
