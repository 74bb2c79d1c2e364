package handler

import (
	"time"

	"chatapi/iface"
	"chatapi/logger"
	"chatapi/services/fakechat/serv"
	"chatapi/wire"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

func (h *ServiceHandler) Login(c iris.Context) {
	var req wire.LoginReq
	if err := c.ReadJSON(&req); err != nil {
		fail(c, iris.StatusBadRequest, err)
		return
	}
	log := logger.WithFields(logger.Fields{
		"Func":   "Login",
		"Email":  req.Email,
		"PageID": req.PageID,
	})
	user, err := h.Directory.Authenticate(req.Email, req.Password)
	if err != nil {
		serv.LoginCounter.WithLabelValues(h.ServiceID, "unauthorized").Inc()
		log.Info(err)
		fail(c, iris.StatusUnauthorized, err)
		return
	}
	actor, err := h.Directory.ActAs(user.ID, req.PageID)
	if err != nil {
		serv.LoginCounter.WithLabelValues(h.ServiceID, "forbidden").Inc()
		log.Info(err)
		fail(c, iris.StatusForbidden, err)
		return
	}

	session := &iface.Session{
		Token:   ksuid.New().String(),
		UserID:  user.ID,
		ActorID: actor,
		Created: time.Now().Unix(),
	}
	if err = h.Sessions.Add(session); err != nil {
		fail(c, iris.StatusInternalServerError, err)
		return
	}
	serv.LoginCounter.WithLabelValues(h.ServiceID, "ok").Inc()
	log.WithField("UserID", user.ID).Info("do login")

	c.JSON(&wire.LoginResp{
		UserID:  session.UserID,
		ActorID: session.ActorID,
		Token:   session.Token,
	})
}

func (h *ServiceHandler) Logout(c iris.Context) {
	session := sessionOf(c)
	logger.WithFields(logger.Fields{
		"Func":    "Logout",
		"UserID":  session.UserID,
		"ActorID": session.ActorID,
	}).Info("do logout")

	if err := h.Sessions.Delete(session.Token); err != nil {
		fail(c, iris.StatusInternalServerError, errors.Wrap(err, "delete session"))
		return
	}
	h.Stream.Kick(session)
	c.JSON(iris.Map{})
}
