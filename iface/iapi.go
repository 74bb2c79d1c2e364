package iface

import (
	"context"
	"errors"

	"chatapi/wire"
)

var (
	ErrUnauthorized = errors.New("err:unauthorized")
	ErrForbidden    = errors.New("err:forbidden")
	ErrNotLoggedIn  = errors.New("err:not logged in")
	ErrEmptyMessage = errors.New("err:empty message")
)

// ListenFunc receives every event of the stream, or the error that ended it
type ListenFunc func(ev *wire.Event, err error)

// StopFunc ends a typing indicator
type StopFunc func(ctx context.Context) error

// API is the surface of a logged in messaging client
type API interface {
	GetCurrentUserID() string
	//发送消息的身份，用户或主页
	ActorID() string
	SendMessage(ctx context.Context, msg wire.Message, threadID string) (*wire.MessageInfo, error)
	SendTypingIndicator(ctx context.Context, threadID string) (StopFunc, error)
	GetUserInfo(ctx context.Context, ids ...string) (map[string]wire.UserInfo, error)
	GetFriendsList(ctx context.Context) ([]wire.Friend, error)
	//返回取消监听函数
	Listen(fn ListenFunc) (stop func())
	Logout(ctx context.Context) error
}
