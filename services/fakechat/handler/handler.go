package handler

import (
	"strings"

	"chatapi/iface"
	"chatapi/services/fakechat/serv"
	"chatapi/storage"
	"chatapi/wire"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
)

const keySession = "session"

type ServiceHandler struct {
	ServiceID string
	Directory *storage.Directory
	Sessions  iface.ISessionStorage
	Messages  storage.MessageStore
	Idgen     *storage.IDGenerator
	Stream    *serv.Handler
}

// Auth resolves the bearer token into a session
func (h *ServiceHandler) Auth(c iris.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))
	if token == "" {
		fail(c, iris.StatusUnauthorized, iface.ErrUnauthorized)
		return
	}
	session, err := h.Sessions.Get(token)
	if err == iface.ErrSessionNil {
		fail(c, iris.StatusUnauthorized, iface.ErrUnauthorized)
		return
	}
	if err != nil {
		fail(c, iris.StatusInternalServerError, err)
		return
	}
	c.Values().Set(keySession, session)
	c.Next()
}

func (h *ServiceHandler) Health(c iris.Context) {
	c.WriteString("ok")
}

func sessionOf(c iris.Context) *iface.Session {
	session, _ := c.Values().Get(keySession).(*iface.Session)
	return session
}

func fail(c iris.Context, code int, err error) {
	c.StatusCode(code)
	c.JSON(&wire.ErrorResp{Message: errors.Cause(err).Error()})
	c.StopExecution()
}
