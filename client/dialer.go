package client

import (
	"context"
	"net"
	"strings"
	"time"

	"chatapi/iface"
	"chatapi/wire"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/pkg/errors"
)

// StreamDialer opens the event stream: the token goes out as the first
// frame and the service answers with a ready event
type StreamDialer struct{}

func (d *StreamDialer) DialAndHandshake(ctx iface.DialerContext) (net.Conn, error) {
	dctx, cancel := context.WithTimeout(context.Background(), ctx.Timeout)
	defer cancel()
	conn, _, _, err := ws.Dialer{Timeout: ctx.Timeout}.Dial(dctx, ctx.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", ctx.Address)
	}
	if err = d.handshake(conn, ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func (d *StreamDialer) handshake(conn net.Conn, ctx iface.DialerContext) error {
	_ = conn.SetDeadline(time.Now().Add(ctx.Timeout))
	defer conn.SetDeadline(time.Time{})

	if err := wsutil.WriteClientText(conn, []byte(ctx.Token)); err != nil {
		return errors.Wrap(err, "send token")
	}
	payload, err := wsutil.ReadServerText(conn)
	if err != nil {
		// a rejected token ends in a close frame
		return errors.Wrap(iface.ErrUnauthorized, err.Error())
	}
	ev, err := wire.UnmarshalEvent(payload)
	if err != nil {
		return err
	}
	if ev.Type != wire.EventReady {
		return errors.Errorf("unexpected %s event during handshake", ev.Type)
	}
	return nil
}

// streamURL turns the REST base url into the stream url
func streamURL(base string) string {
	base = strings.TrimSuffix(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + wire.PathStream
}
