package serv

import (
	"fmt"
	"strings"
	"time"

	"chatapi/iface"
	"chatapi/logger"
	"chatapi/wire"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// Handler authenticates event streams and fans events out to them
type Handler struct {
	ServiceID string
	Sessions  iface.ISessionStorage
	Channels  iface.IChannelMap
}

// Accept expects the session token as the first frame
func (h *Handler) Accept(conn iface.IConn, timeout time.Duration) (string, error) {
	log := logger.WithFields(logger.Fields{
		"ServiceID": h.ServiceID,
		"module":    "Handler",
		"handler":   "Accept",
	})
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	frame, err := conn.ReadFrame()
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(frame.GetPayload()))
	if token == "" {
		return "", errors.New("token is required")
	}
	session, err := h.Sessions.Get(token)
	if err != nil {
		return "", errors.Wrap(iface.ErrUnauthorized, err.Error())
	}
	id := ChannelID(session)
	log.WithFields(logger.Fields{
		"user":    session.UserID,
		"actor":   session.ActorID,
		"channel": id,
	}).Info("stream accepted")
	return id, nil
}

// Connected acknowledges the stream so the client knows it is subscribed.
// Only registered streams are counted; Disconnect follows each of them.
func (h *Handler) Connected(ch iface.IChannel) {
	StreamGauge.WithLabelValues(h.ServiceID).Inc()
	payload, _ := wire.MarshalEvent(&wire.Event{
		Type:      wire.EventReady,
		Timestamp: time.Now().UnixNano() / int64(time.Millisecond),
	})
	if err := ch.Push(payload); err != nil {
		logger.WithField("channel", ch.ID()).Warn(err)
	}
}

// Receive drops client payloads; the stream is push only
func (h *Handler) Receive(ag iface.IAgent, payload []byte) {
	logger.WithFields(logger.Fields{
		"module":  "Handler",
		"channel": ag.ID(),
	}).Tracef("ignore %d bytes from client", len(payload))
}

func (h *Handler) Disconnect(id string) error {
	logger.WithFields(logger.Fields{
		"module":  "Handler",
		"channel": id,
	}).Info("disconnect")
	StreamGauge.WithLabelValues(h.ServiceID).Dec()
	return nil
}

// Deliver pushes ev to every stream of actor
func (h *Handler) Deliver(actor string, ev *wire.Event) int {
	payload, err := wire.MarshalEvent(ev)
	if err != nil {
		logger.WithError(err).Error("marshal event")
		return 0
	}
	pushed := 0
	for _, ch := range h.Channels.Find(actor + "_") {
		if err := ch.Push(payload); err != nil {
			logger.WithFields(logger.Fields{
				"module":  "Handler",
				"channel": ch.ID(),
			}).Warn(err)
			continue
		}
		pushed++
	}
	PushCounter.WithLabelValues(h.ServiceID, ev.Type).Add(float64(pushed))
	return pushed
}

// Kick closes the streams opened with session
func (h *Handler) Kick(session *iface.Session) {
	for _, ch := range h.Channels.Find(sessionPrefix(session)) {
		_ = ch.Close()
	}
}

// ChannelID is unique per stream; streams of an actor share the prefix
func ChannelID(session *iface.Session) string {
	return sessionPrefix(session) + ksuid.New().String()
}

func sessionPrefix(session *iface.Session) string {
	return fmt.Sprintf("%s_%s_", session.ActorID, session.Token)
}
