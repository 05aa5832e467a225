package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/justjobs360/fileconverter/internal/convert"
)

func TestLifecycle(t *testing.T) {
	s := New()
	if got := s.Status(); got.State != StateIdle || got.Progress != 0 {
		t.Fatalf("new session = %+v, want idle/0", got)
	}

	_, token := s.Start(context.Background())
	if got := s.Status().State; got != StateUploading {
		t.Fatalf("after Start: %s, want uploading", got)
	}

	s.Converting(token)
	if got := s.Status().State; got != StateConverting {
		t.Fatalf("after Converting: %s, want converting", got)
	}

	s.Progress(token, 50)
	s.Succeed(token)
	got := s.Status()
	if got.State != StateSuccess || got.Progress != 100 {
		t.Fatalf("after Succeed: %+v, want success/100", got)
	}
}

func TestFail(t *testing.T) {
	s := New()
	_, token := s.Start(context.Background())
	s.Converting(token)

	cerr := &convert.Error{Code: convert.CodeConversionError, Status: http.StatusInternalServerError}
	s.Fail(token, cerr)

	got := s.Status()
	if got.State != StateError {
		t.Fatalf("state = %s, want error", got.State)
	}
	if got.Err != cerr {
		t.Fatalf("err = %v, want the failure that was recorded", got.Err)
	}
}

func TestProgressMonotonic(t *testing.T) {
	s := New()
	_, token := s.Start(context.Background())
	s.Converting(token)

	s.Progress(token, 40)
	s.Progress(token, 20) // must be dropped
	if got := s.Status().Progress; got != 40 {
		t.Errorf("progress = %d, want 40 after lower value dropped", got)
	}

	s.Progress(token, 150)
	if got := s.Status().Progress; got != 100 {
		t.Errorf("progress = %d, want clamped to 100", got)
	}
}

func TestStartSupersedesInFlight(t *testing.T) {
	s := New()
	ctx1, token1 := s.Start(context.Background())
	s.Converting(token1)
	s.Progress(token1, 60)

	_, token2 := s.Start(context.Background())

	select {
	case <-ctx1.Done():
	default:
		t.Fatal("superseded attempt's context not cancelled")
	}

	// Late updates from the superseded attempt must not leak through.
	s.Progress(token1, 90)
	s.Succeed(token1)

	got := s.Status()
	if got.State != StateUploading || got.Progress != 0 {
		t.Fatalf("status = %+v, want fresh uploading/0", got)
	}

	s.Converting(token2)
	s.Succeed(token2)
	if got := s.Status().State; got != StateSuccess {
		t.Fatalf("state = %s, want success for the new attempt", got)
	}
}

func TestResetFromAnyState(t *testing.T) {
	s := New()

	ctx, token := s.Start(context.Background())
	s.Converting(token)
	s.Progress(token, 30)
	s.Reset()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("Reset did not cancel the in-flight attempt")
	}

	got := s.Status()
	if got.State != StateIdle || got.Progress != 0 || got.Err != nil {
		t.Fatalf("after Reset: %+v, want idle/0/nil", got)
	}

	// Reset again from idle is a no-op that stays idle.
	s.Reset()
	if got := s.Status().State; got != StateIdle {
		t.Fatalf("double Reset: %s, want idle", got)
	}
}

func TestUpdatesLatestWins(t *testing.T) {
	s := New()
	_, token := s.Start(context.Background())
	s.Converting(token)
	s.Progress(token, 25)
	s.Progress(token, 75)

	// Nothing was read; the buffered channel must hold the latest status.
	select {
	case got := <-s.Updates():
		if got.State != StateConverting || got.Progress != 75 {
			t.Errorf("latest update = %+v, want converting/75", got)
		}
	default:
		t.Fatal("no update available")
	}
}

func TestStaleTokenIgnored(t *testing.T) {
	s := New()
	_, token := s.Start(context.Background())
	s.Reset()

	s.Converting(token)
	s.Fail(token, &convert.Error{Code: convert.CodeTimeout})
	if got := s.Status().State; got != StateIdle {
		t.Fatalf("stale token mutated session: %s", got)
	}
}
