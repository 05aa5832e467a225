// Package session tracks the lifecycle of a single conversion attempt as
// an explicit state machine: idle → uploading → converting → success or
// error, with Reset returning to idle from any state.
//
// A session holds at most one in-flight attempt. Starting a new attempt
// supersedes the previous one: its context is cancelled and any late
// updates it produces are discarded.
package session

import (
	"context"
	"sync"

	"github.com/justjobs360/fileconverter/internal/convert"
)

// State is a lifecycle phase of a conversion attempt.
type State string

const (
	StateIdle       State = "idle"
	StateUploading  State = "uploading"
	StateConverting State = "converting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Status is a point-in-time snapshot of the session.
type Status struct {
	State    State
	Progress int

	// Err is set only in StateError.
	Err *convert.Error
}

// Session is safe for concurrent use. The zero value is not usable; call
// New.
type Session struct {
	mu       sync.Mutex
	state    State
	progress int
	err      *convert.Error

	gen    uint64
	cancel context.CancelFunc

	updates chan Status
}

// New returns an idle session.
func New() *Session {
	return &Session{
		state: StateIdle,
		// Buffered latest-wins channel: a slow subscriber sees the most
		// recent status, never blocks a conversion.
		updates: make(chan Status, 1),
	}
}

// Start begins a new attempt in StateUploading with progress zero. Any
// prior in-flight attempt is cancelled and superseded. The returned
// context is cancelled when the attempt is superseded or the session is
// reset; the returned token identifies this attempt in later calls so a
// superseded attempt cannot corrupt its successor's status.
func (s *Session) Start(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.gen++
	s.state = StateUploading
	s.progress = 0
	s.err = nil
	s.publishLocked()
	return ctx, s.gen
}

// Converting moves the attempt from uploading to converting. Stale tokens
// are ignored.
func (s *Session) Converting(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen || s.state != StateUploading {
		return
	}
	s.state = StateConverting
	s.publishLocked()
}

// Progress records conversion progress 0-100. Values never decrease
// within an attempt; lower values and stale tokens are dropped.
func (s *Session) Progress(token uint64, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return
	}
	if s.state != StateUploading && s.state != StateConverting {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= s.progress {
		return
	}
	s.progress = percent
	s.publishLocked()
}

// Succeed completes the attempt with progress 100.
func (s *Session) Succeed(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return
	}
	s.state = StateSuccess
	s.progress = 100
	s.err = nil
	s.publishLocked()
}

// Fail completes the attempt in StateError with the structured failure.
func (s *Session) Fail(token uint64, cerr *convert.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return
	}
	s.state = StateError
	s.err = cerr
	s.publishLocked()
}

// Reset cancels any in-flight attempt and returns to idle. Valid from any
// state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.state = StateIdle
	s.progress = 0
	s.err = nil
	s.publishLocked()
}

// Status returns the current snapshot.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, Progress: s.progress, Err: s.err}
}

// Updates returns the status stream. The channel carries the latest
// status; intermediate values may be dropped for slow readers.
func (s *Session) Updates() <-chan Status {
	return s.updates
}

// publishLocked pushes the current status, replacing an unread one.
func (s *Session) publishLocked() {
	status := Status{State: s.state, Progress: s.progress, Err: s.err}
	for {
		select {
		case s.updates <- status:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
