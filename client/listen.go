package client

import (
	"sync"

	"chatapi/iface"
	"chatapi/websocket"
	"chatapi/wire"

	"github.com/pkg/errors"
)

// Listen registers fn for incoming events. The first listener opens the
// stream and the last stop closes it. Connection failures are reported to
// fn as an error.
func (a *API) Listen(fn iface.ListenFunc) func() {
	a.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	err := a.ready()
	if err == nil && a.stream == nil {
		err = a.connect()
	}
	if err != nil {
		delete(a.listeners, id)
	}
	a.Unlock()

	if err != nil {
		go fn(nil, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			a.Lock()
			delete(a.listeners, id)
			var stream iface.IClient
			if len(a.listeners) == 0 {
				stream = a.stream
				a.stream = nil
			}
			a.Unlock()
			if stream != nil {
				stream.Close()
			}
		})
	}
}

// connect must be called with the lock held
func (a *API) connect() error {
	cli := websocket.NewClient(a.actorID, "chatapi", websocket.ClientOptions{
		Heartbeat: a.options.Heartbeat,
		ReadWait:  a.options.Heartbeat * 2,
		Token:     a.token,
	})
	cli.SetDialer(&StreamDialer{})
	if err := cli.Connect(streamURL(a.options.BaseURL)); err != nil {
		return errors.Wrap(err, "listen")
	}
	a.stream = cli
	go a.readloop(cli)
	a.log.Debug("stream connected")
	return nil
}

func (a *API) readloop(cli iface.IClient) {
	for {
		frame, err := cli.Read()
		if err != nil {
			a.Lock()
			current := a.stream == cli
			if current {
				a.stream = nil
			}
			a.Unlock()
			// closed on purpose by stop or Logout
			if !current {
				return
			}
			cli.Close()
			a.log.Warn("stream lost: ", err)
			a.broadcast(nil, errors.Wrap(err, "stream"))
			return
		}
		if frame.GetOpCode() != iface.OpText && frame.GetOpCode() != iface.OpBinary {
			continue
		}
		ev, err := wire.UnmarshalEvent(frame.GetPayload())
		if err != nil {
			a.log.Warn(err)
			continue
		}
		if !a.accept(ev) {
			continue
		}
		a.broadcast(ev, nil)
	}
}

// accept applies SelfListen and ListenEvents
func (a *API) accept(ev *wire.Event) bool {
	switch ev.Type {
	case wire.EventMessage:
		return a.options.SelfListen || ev.SenderID != a.actorID
	case wire.EventReady:
		return false
	default:
		return a.options.ListenEvents
	}
}

func (a *API) broadcast(ev *wire.Event, err error) {
	a.Lock()
	fns := make([]iface.ListenFunc, 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.Unlock()
	for _, fn := range fns {
		fn(ev, err)
	}
}
