package iface

import "errors"

var ErrSessionNil = errors.New("err:session nil")

// Session is a logged in client of the messaging service
type Session struct {
	Token   string `json:"token"`
	UserID  string `json:"userID"`
	ActorID string `json:"actorID"`
	Created int64  `json:"created"`
}

// ISessionStorage keeps login sessions keyed by token
type ISessionStorage interface {
	Add(session *Session) error
	Delete(token string) error
	Get(token string) (*Session, error)
}
