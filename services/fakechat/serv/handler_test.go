package serv_test

import (
	"net"
	"testing"
	"time"

	"chatapi/core"
	"chatapi/iface"
	"chatapi/services/fakechat/serv"
	"chatapi/storage"
	"chatapi/websocket"

	"github.com/gobwas/ws"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loopback(t *testing.T) (net.Conn, net.Conn) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()
	cli, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	srv, ok := <-accepted
	require.True(t, ok, "accept failed")
	t.Cleanup(func() {
		cli.Close()
		srv.Close()
	})
	return srv, cli
}

func TestStreamGaugeCountsRegisteredStreams(t *testing.T) {
	sessions := storage.NewMemoryStorage()
	require.NoError(t, sessions.Add(&iface.Session{Token: "tk1", UserID: "100001", ActorID: "100001"}))
	h := &serv.Handler{
		ServiceID: "gauge01",
		Sessions:  sessions,
		Channels:  core.NewChannels(),
	}
	gauge := serv.StreamGauge.WithLabelValues("gauge01")

	srv, cli := loopback(t)
	require.NoError(t, ws.WriteFrame(cli, ws.NewTextFrame([]byte("tk1"))))
	id, err := h.Accept(websocket.NewConn(srv), time.Second*3)
	require.NoError(t, err)
	assert.Contains(t, id, "100001_tk1_")
	// an accepted stream may still be rejected as a duplicate
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))

	ch := core.NewChannel(id, websocket.NewConn(srv))
	defer ch.Close()
	h.Connected(ch)
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))

	require.NoError(t, h.Disconnect(id))
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
}

func TestAcceptRejectsUnknownToken(t *testing.T) {
	h := &serv.Handler{
		ServiceID: "gauge02",
		Sessions:  storage.NewMemoryStorage(),
		Channels:  core.NewChannels(),
	}
	srv, cli := loopback(t)
	require.NoError(t, ws.WriteFrame(cli, ws.NewTextFrame([]byte("nope"))))
	_, err := h.Accept(websocket.NewConn(srv), time.Second*3)
	assert.Error(t, err)
	assert.Equal(t, float64(0), testutil.ToFloat64(serv.StreamGauge.WithLabelValues("gauge02")))
}
