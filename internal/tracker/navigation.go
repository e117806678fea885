package tracker

import (
	"context"
	"sync"
)

// Navigator reports client-side route changes.
type Navigator interface {
	Subscribe(fn func(path string)) (unsubscribe func())
}

// History is an in-process Navigator: Navigate announces a route change to
// every subscriber.
type History struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(string)
}

func NewHistory() *History {
	return &History{subs: make(map[int]func(string))}
}

func (h *History) Subscribe(fn func(path string)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *History) Navigate(path string) {
	h.mu.RLock()
	subs := make([]func(string), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.RUnlock()

	for _, fn := range subs {
		fn(path)
	}
}

// Bootstrap starts page-view tracking for one client. Start is idempotent.
type Bootstrap struct {
	Tracker     *Tracker
	Navigator   Navigator
	Environment Environment
	InitialPath string

	once   sync.Once
	mu     sync.Mutex
	detach func()
}

// Start tracks the initial view and, when a Navigator is set, every later
// navigation. Calls after the first do nothing.
func (b *Bootstrap) Start(ctx context.Context) {
	b.once.Do(func() {
		b.Tracker.TrackPageView(ctx, View{
			Path:      b.InitialPath,
			UserAgent: b.Environment.UserAgent,
			Referrer:  b.Environment.Referrer,
		})

		if b.Navigator == nil {
			return
		}
		detach := b.Tracker.Attach(b.Navigator, b.Environment)

		b.mu.Lock()
		b.detach = detach
		b.mu.Unlock()
	})
}

// Stop detaches from the navigator. It does not wait for in-flight sends;
// call Tracker.Flush for that.
func (b *Bootstrap) Stop() {
	b.mu.Lock()
	detach := b.detach
	b.detach = nil
	b.mu.Unlock()

	if detach != nil {
		detach()
	}
}
