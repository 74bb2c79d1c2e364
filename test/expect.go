package test

import (
	"sync"
	"time"

	"chatapi/wire"
)

// Timeout bounds every wait of the suites
const Timeout = 20 * time.Second

// Matcher tells whether ev is the one a test waits for
type Matcher func(ev *wire.Event) bool

type expectation struct {
	matcher Matcher
	done    func()
}

// Expectations correlates incoming events with the tests waiting for them.
// Tests add while the listener dispatches, so access is locked.
type Expectations struct {
	sync.Mutex
	pending []expectation
}

func (e *Expectations) Add(matcher Matcher, done func()) {
	e.Lock()
	e.pending = append(e.pending, expectation{matcher: matcher, done: done})
	e.Unlock()
}

// Expect returns a channel closed once an event accepted by matcher arrives
func (e *Expectations) Expect(matcher Matcher) <-chan struct{} {
	ch := make(chan struct{})
	e.Add(matcher, func() { close(ch) })
	return ch
}

// Dispatch completes and removes the first expectation matching ev. It
// reports whether one did.
func (e *Expectations) Dispatch(ev *wire.Event) bool {
	e.Lock()
	var done func()
	for i, exp := range e.pending {
		if exp.matcher(ev) {
			done = exp.done
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			break
		}
	}
	e.Unlock()
	if done == nil {
		return false
	}
	done()
	return true
}

func (e *Expectations) Len() int {
	e.Lock()
	defer e.Unlock()
	return len(e.pending)
}

// Wait blocks until ch is closed or timeout passes
func Wait(ch <-chan struct{}, timeout time.Duration) bool {
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// IsMessage matches a one to one message with body
func IsMessage(body string) Matcher {
	return func(ev *wire.Event) bool {
		return ev.Type == wire.EventMessage &&
			ev.Body == body &&
			!ev.IsGroup
	}
}

// IsSticker matches a one to one message carrying sticker stickerID
func IsSticker(stickerID string) Matcher {
	return func(ev *wire.Event) bool {
		return ev.Type == wire.EventMessage &&
			len(ev.Attachments) > 0 &&
			ev.Attachments[0].Type == wire.AttachmentSticker &&
			ev.Attachments[0].StickerID == stickerID &&
			!ev.IsGroup
	}
}
