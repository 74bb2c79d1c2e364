package core

import (
	"sync"
	"sync/atomic"

	"chatapi/iface"
)

// Event fires at most once; Done is closed when it does
type Event struct {
	fired int32
	c     chan struct{}
	o     sync.Once
}

func NewEvent() iface.IEvent {
	return &Event{c: make(chan struct{})}
}

// Fire returns true only for the call that fired the event
func (e *Event) Fire() bool {
	ret := false
	e.o.Do(func() {
		atomic.StoreInt32(&e.fired, 1)
		close(e.c)
		ret = true
	})
	return ret
}

func (e *Event) Done() <-chan struct{} {
	return e.c
}

func (e *Event) HasFired() bool {
	return atomic.LoadInt32(&e.fired) == 1
}
