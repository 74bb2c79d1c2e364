package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"chatapi/iface"

	redis "github.com/go-redis/redis/v7"
	"github.com/pkg/errors"
)

const (
	SessionExpired = time.Hour * 48
)

type RedisStorage struct {
	cli *redis.Client
}

func NewRedisStorage(cli *redis.Client) iface.ISessionStorage {
	return &RedisStorage{
		cli: cli,
	}
}

// InitRedis connects and pings
func InitRedis(addr string, pass string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DialTimeout:  time.Second * 5,
		ReadTimeout:  time.Second * 5,
		WriteTimeout: time.Second * 5,
	})
	if _, err := rdb.Ping().Result(); err != nil {
		return nil, errors.Wrapf(err, "redis ping %s", addr)
	}
	return rdb, nil
}

func (r *RedisStorage) Add(session *iface.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session token is required")
	}
	buf, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.cli.Set(KeySession(session.Token), buf, SessionExpired).Err()
}

func (r *RedisStorage) Delete(token string) error {
	return r.cli.Del(KeySession(token)).Err()
}

func (r *RedisStorage) Get(token string) (*iface.Session, error) {
	bts, err := r.cli.Get(KeySession(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, iface.ErrSessionNil
		}
		return nil, err
	}
	var session iface.Session
	if err = json.Unmarshal(bts, &session); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &session, nil
}

func KeySession(token string) string {
	return fmt.Sprintf("login:sn:%s", token)
}
