package chatcli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"chatapi/services/fakechat/fakechattest"
	"chatapi/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by the listen callback and read by the test
type syncBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.Lock()
	defer b.Unlock()
	return b.buf.String()
}

func account(srv *fakechattest.Server, email string) loginOptions {
	return loginOptions{email: email, password: fakechattest.Password, baseURL: srv.URL}
}

func TestRunSend(t *testing.T) {
	srv := fakechattest.Start(t, fakechattest.Seed)
	var out bytes.Buffer
	err := RunSend(context.Background(), &SendOptions{
		loginOptions: account(srv, "bob@example.com"),
		to:           "100001",
	}, "hello", &out)
	require.NoError(t, err)
	fields := strings.Fields(out.String())
	require.Len(t, fields, 2)
	assert.Equal(t, "100001", fields[0])

	err = RunSend(context.Background(), &SendOptions{loginOptions: account(srv, "bob@example.com")}, "", &out)
	assert.Error(t, err)
}

func TestRunListen(t *testing.T) {
	srv := fakechattest.Start(t, fakechattest.Seed)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- RunListen(ctx, &ListenOptions{loginOptions: account(srv, "alice@example.com")}, out)
	}()

	// the listener may still be connecting, so keep sending until it prints
	require.Eventually(t, func() bool {
		_ = RunSend(context.Background(), &SendOptions{
			loginOptions: account(srv, "carol@example.com"),
			to:           "100001",
		}, "ping", &bytes.Buffer{})
		return strings.Contains(out.String(), "ping")
	}, time.Second*5, time.Millisecond*100)

	line := strings.SplitN(out.String(), "\n", 2)[0]
	var ev wire.Event
	require.NoError(t, json.Unmarshal([]byte(line), &ev))
	assert.Equal(t, wire.EventMessage, ev.Type)
	assert.Equal(t, "100003", ev.SenderID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 5):
		t.Fatal("listen did not stop")
	}
}
