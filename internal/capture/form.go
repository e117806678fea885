// Package capture drives the waitlist email form: validation, submission,
// the minimum loading floor, and the timed reset after success.
package capture

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/constants"
	"github.com/viewmark/viewmark/pkg/emailaddr"
)

type State int

const (
	Idle State = iota
	Validating
	Submitting
	Success
	Resetting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Resetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Reposition marks the points where a small viewport should scroll the form
// back into view.
type Reposition int

const (
	AfterSubmit Reposition = iota
	AfterReset
)

type Submitter interface {
	Submit(ctx context.Context, email string) error
}

type Options struct {
	MinLoading     time.Duration
	SuccessDisplay time.Duration
	// ResetFade is the fade between Success and Idle. Zero skips the fade.
	ResetFade     time.Duration
	SubmitTimeout time.Duration
	Clock         clock.Clock
	Logger        *log.Logger
	OnReposition  func(Reposition)
}

// DefaultOptions returns the production timings with the real clock.
func DefaultOptions() Options {
	return Options{
		MinLoading:     constants.DefaultMinLoading,
		SuccessDisplay: constants.DefaultSuccessDisplay,
		ResetFade:      constants.DefaultResetFade,
		SubmitTimeout:  constants.DefaultSubmitTimeout,
		Clock:          clock.Real(),
	}
}

type Snapshot struct {
	State State
	Email string
	Error string
}

type Form struct {
	submitter Submitter
	opts      Options
	logger    *log.Logger

	mu        sync.Mutex
	state     State
	email     string
	errMsg    string
	closed    bool
	timer     clock.Timer
	listeners map[int]func(Snapshot)
	nextID    int
}

func NewForm(submitter Submitter, opts Options) *Form {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewDiscardLogger()
	}

	return &Form{
		submitter: submitter,
		opts:      opts,
		logger:    logger.WithComponent("capture"),
		listeners: make(map[int]func(Snapshot)),
	}
}

// SetEmail replaces the typed value and clears any inline error.
func (f *Form) SetEmail(email string) {
	f.update(func() bool {
		if f.closed {
			return false
		}
		f.email = email
		f.errMsg = ""
		return true
	})
}

// Focus clears any inline error.
func (f *Form) Focus() {
	f.update(func() bool {
		if f.closed || f.errMsg == "" {
			return false
		}
		f.errMsg = ""
		return true
	})
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// CanSubmit is false while a submission or its success display is running.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed && f.state == Idle
}

// Subscribe registers fn for every state change and returns a function that
// removes it.
func (f *Form) Subscribe(fn func(Snapshot)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// Submit validates the typed value and, when it passes, sends it. The call
// returns once the submitter has answered; the visible outcome follows after
// the minimum loading floor. Validation failures never reach the submitter.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.closed:
		f.mu.Unlock()
		return ErrClosed
	case f.state != Idle:
		f.mu.Unlock()
		return ErrSubmitDisabled
	}
	f.state = Validating
	f.errMsg = ""
	email := strings.TrimSpace(f.email)
	f.mu.Unlock()
	f.notify()

	if err := validate(email); err != nil {
		f.update(func() bool {
			f.state = Idle
			f.errMsg = userMessage(err)
			return true
		})
		return err
	}

	started := f.opts.Clock.Now()
	f.update(func() bool {
		f.state = Submitting
		return true
	})

	err := f.send(ctx, email)
	if err != nil {
		f.logger.Info("Waitlist submission failed", "error", err)
	}

	delay := f.opts.MinLoading - f.opts.Clock.Now().Sub(started)
	if delay < 0 {
		delay = 0
	}

	f.mu.Lock()
	if !f.closed {
		f.timer = f.opts.Clock.AfterFunc(delay, func() { f.settle(err) })
	}
	f.mu.Unlock()

	return err
}

// Close cancels pending timers. Later calls are no-ops and later
// submissions fail with ErrClosed.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func validate(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailaddr.IsWellFormed(email) {
		return ErrEmailInvalidFormat
	}
	return nil
}

func (f *Form) send(ctx context.Context, email string) error {
	if f.opts.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.SubmitTimeout)
		defer cancel()
	}

	err := f.submitter.Submit(ctx, email)
	if err == nil || errors.Is(err, ErrEmailAlreadyExists) {
		return err
	}

	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) {
		return submissionErr
	}
	return &SubmissionError{Err: err}
}

// settle leaves Submitting once the loading floor has elapsed. A conflict
// keeps the typed value.
func (f *Form) settle(err error) {
	changed := f.update(func() bool {
		if f.closed {
			return false
		}
		f.timer = nil
		if err != nil {
			f.state = Idle
			f.errMsg = userMessage(err)
			return true
		}
		f.state = Success
		f.timer = f.opts.Clock.AfterFunc(f.opts.SuccessDisplay, f.beginReset)
		return true
	})
	if changed {
		f.reposition(AfterSubmit)
	}
}

func (f *Form) beginReset() {
	if f.opts.ResetFade <= 0 {
		if f.update(f.enterResetting(false)) {
			f.finishReset()
		}
		return
	}
	f.update(f.enterResetting(true))
}

func (f *Form) enterResetting(scheduleFade bool) func() bool {
	return func() bool {
		if f.closed {
			return false
		}
		f.state = Resetting
		f.timer = nil
		if scheduleFade {
			f.timer = f.opts.Clock.AfterFunc(f.opts.ResetFade, f.finishReset)
		}
		return true
	}
}

func (f *Form) finishReset() {
	changed := f.update(func() bool {
		if f.closed {
			return false
		}
		f.timer = nil
		f.state = Idle
		f.email = ""
		f.errMsg = ""
		return true
	})
	if changed {
		f.reposition(AfterReset)
	}
}

func (f *Form) reposition(r Reposition) {
	if f.opts.OnReposition != nil {
		f.opts.OnReposition(r)
	}
}

// update applies mutate under the lock and notifies listeners if it
// reports a change.
func (f *Form) update(mutate func() bool) bool {
	f.mu.Lock()
	changed := mutate()
	f.mu.Unlock()

	if changed {
		f.notify()
	}
	return changed
}

func (f *Form) notify() {
	f.mu.Lock()
	snap := f.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(f.listeners))
	for _, fn := range f.listeners {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{State: f.state, Email: f.email, Error: f.errMsg}
}
