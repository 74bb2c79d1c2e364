package storage

import (
	"os"
	"testing"

	"chatapi/iface"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionStorage(t *testing.T, store iface.ISessionStorage) {
	token := ksuid.New().String()
	_, err := store.Get(token)
	assert.Equal(t, iface.ErrSessionNil, err)

	require.NoError(t, store.Add(&iface.Session{Token: token, UserID: "100", ActorID: "200"}))
	got, err := store.Get(token)
	require.NoError(t, err)
	assert.Equal(t, "100", got.UserID)
	assert.Equal(t, "200", got.ActorID)

	require.NoError(t, store.Delete(token))
	_, err = store.Get(token)
	assert.Equal(t, iface.ErrSessionNil, err)

	assert.Error(t, store.Add(&iface.Session{}))
}

func TestMemoryStorage(t *testing.T) {
	testSessionStorage(t, NewMemoryStorage())
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb, err := InitRedis(addr, "")
	require.NoError(t, err)
	defer rdb.Close()
	testSessionStorage(t, NewRedisStorage(rdb))
}

func testMessageStore(t *testing.T, store MessageStore) {
	key := ThreadKey("200", ksuid.New().String())
	for i, body := range []string{"c", "a", "b"} {
		sendTime := []int64{3, 1, 2}[i]
		require.NoError(t, store.Insert(&MessageContent{
			ThreadKey: key,
			SenderID:  "200",
			Body:      body,
			SendTime:  sendTime,
		}))
	}

	list, err := store.List(key, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Body)
	assert.Equal(t, "c", list[1].Body)

	list, err = store.List("nothing:here", 10)
	require.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestMemoryMessageStore(t *testing.T) {
	testMessageStore(t, NewMemoryMessageStore())
}

func TestGormMessageStore(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}
	db, err := InitMysqlDb(dsn)
	require.NoError(t, err)
	testMessageStore(t, NewGormMessageStore(db))
}

func TestThreadKey(t *testing.T) {
	assert.Equal(t, ThreadKey("1", "2"), ThreadKey("2", "1"))
	assert.Equal(t, "1:2", ThreadKey("2", "1"))
}

func TestIDGenerator(t *testing.T) {
	g, err := NewIDGenerator(1)
	require.NoError(t, err)
	a := g.Next()
	b := g.Next()
	assert.True(t, b.Int64() > a.Int64())

	parsed, err := g.Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = NewIDGenerator(1 << 20)
	assert.Error(t, err)
}
