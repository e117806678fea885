// Package tracker sends fire-and-forget page views. Nothing it does can fail
// the caller: every error is logged at debug level and dropped.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/circuitbreaker"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/constants"
)

const (
	DefaultSendTimeout     = 5 * time.Second
	DefaultNavigationDelay = 100 * time.Millisecond
)

// View is one logical page view as the host environment reports it.
type View struct {
	Path      string
	UserAgent string
	Referrer  string
}

type Options struct {
	Sessions        SessionStore
	Clock           clock.Clock
	Logger          *log.Logger
	Breaker         circuitbreaker.CircuitBreaker
	SendTimeout     time.Duration
	NavigationDelay time.Duration
}

type Tracker struct {
	sender   Sender
	sessions SessionStore
	clock    clock.Clock
	logger   *log.Logger
	breaker  circuitbreaker.CircuitBreaker
	ids      *idSource

	sendTimeout     time.Duration
	navigationDelay time.Duration

	sessionMu sync.Mutex
	inflight  sync.WaitGroup
}

func New(sender Sender, opts Options) *Tracker {
	t := &Tracker{
		sender:          sender,
		sessions:        opts.Sessions,
		clock:           opts.Clock,
		logger:          opts.Logger,
		breaker:         opts.Breaker,
		ids:             newIDSource(),
		sendTimeout:     opts.SendTimeout,
		navigationDelay: opts.NavigationDelay,
	}
	if t.sessions == nil {
		t.sessions = NewMemorySessionStore()
	}
	if t.clock == nil {
		t.clock = clock.Real()
	}
	if t.logger == nil {
		t.logger = log.NewDiscardLogger()
	}
	t.logger = t.logger.WithComponent("tracker")
	if t.breaker == nil {
		t.breaker = circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
			FailureThreshold: 5,
			RecoveryTimeout:  30 * time.Second,
			SuccessThreshold: 1,
			Clock:            t.clock,
		})
	}
	if t.sendTimeout <= 0 {
		t.sendTimeout = DefaultSendTimeout
	}
	if t.navigationDelay < 0 {
		t.navigationDelay = 0
	}
	return t
}

// SessionID returns the id cached in the session store, creating it on
// first use.
func (t *Tracker) SessionID() string {
	t.sessionMu.Lock()
	defer t.sessionMu.Unlock()

	if id, ok := t.sessions.Get(constants.SessionStorageKey); ok && id != "" {
		return id
	}

	id := t.ids.New(t.clock.Now())
	t.sessions.Set(constants.SessionStorageKey, id)
	return id
}

// TrackPageView sends v in the background and returns immediately. The
// send outlives ctx's cancellation but keeps its values.
func (t *Tracker) TrackPageView(ctx context.Context, v View) {
	event := Event{
		PagePath:  v.Path,
		UserAgent: v.UserAgent,
		Referrer:  v.Referrer,
		SessionID: t.SessionID(),
	}

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				t.logger.Debug("Page view tracking panicked", "panic", r)
			}
		}()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.sendTimeout)
		defer cancel()

		err := t.breaker.Call(func() error {
			return t.sender.Send(sendCtx, event)
		})
		switch {
		case errors.Is(err, circuitbreaker.ErrCircuitOpen):
			t.logger.Debug("Page view dropped, tracking endpoint circuit open", "page_path", event.PagePath)
		case err != nil:
			t.logger.Debug("Page view tracking failed", "page_path", event.PagePath, "error", err)
		}
	}()
}

// Flush blocks until every send started so far has finished.
func (t *Tracker) Flush() {
	t.inflight.Wait()
}

// Environment describes the host that page views are reported from.
type Environment struct {
	UserAgent string
	Referrer  string
}

// Attach tracks a view for every navigation nav reports, after the
// navigation delay. The returned function detaches and cancels views that
// have not been sent yet.
func (t *Tracker) Attach(nav Navigator, env Environment) func() {
	var (
		mu      sync.Mutex
		pending = make(map[clock.Timer]struct{})
		stopped bool
	)

	unsubscribe := nav.Subscribe(func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}

		var timer clock.Timer
		timer = t.clock.AfterFunc(t.navigationDelay, func() {
			mu.Lock()
			_, live := pending[timer]
			delete(pending, timer)
			mu.Unlock()
			if !live {
				return
			}
			t.TrackPageView(context.Background(), View{Path: path, UserAgent: env.UserAgent, Referrer: env.Referrer})
		})
		pending[timer] = struct{}{}
	})

	return func() {
		unsubscribe()

		mu.Lock()
		defer mu.Unlock()
		stopped = true
		for timer := range pending {
			timer.Stop()
			delete(pending, timer)
		}
	}
}
