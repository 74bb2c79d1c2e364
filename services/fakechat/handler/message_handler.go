package handler

import (
	"fmt"
	"time"

	"chatapi/iface"
	"chatapi/services/fakechat/serv"
	"chatapi/storage"
	"chatapi/wire"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
)

const (
	DefaultHistoryCount = 20
	MaxHistoryCount     = 100
)

var ErrNoThread = errors.New("thread not found")

func (h *ServiceHandler) SendMessage(c iris.Context) {
	session := sessionOf(c)
	var req wire.SendMessageReq
	if err := c.ReadJSON(&req); err != nil {
		fail(c, iris.StatusBadRequest, err)
		return
	}
	if req.Message.Empty() {
		fail(c, iris.StatusBadRequest, iface.ErrEmptyMessage)
		return
	}
	if !h.Directory.Exists(req.ThreadID) {
		fail(c, iris.StatusNotFound, ErrNoThread)
		return
	}

	sendTime := time.Now().UnixNano() / int64(time.Millisecond)
	messageID := h.Idgen.Next()
	content := &storage.MessageContent{
		ID:        messageID.Int64(),
		ThreadKey: storage.ThreadKey(session.ActorID, req.ThreadID),
		SenderID:  session.ActorID,
		Recipient: req.ThreadID,
		Body:      req.Message.Body,
		StickerID: req.Message.Sticker,
		URL:       req.Message.URL,
		SendTime:  sendTime,
	}
	if err := h.Messages.Insert(content); err != nil {
		fail(c, iris.StatusInternalServerError, err)
		return
	}
	serv.MessageCounter.WithLabelValues(h.ServiceID, kindOf(req.Message)).Inc()

	//发给接收方和发送方的所有在线连接
	h.Stream.Deliver(content.Recipient, toEvent(content, content.Recipient))
	if content.SenderID != content.Recipient {
		h.Stream.Deliver(content.SenderID, toEvent(content, content.SenderID))
	}

	c.JSON(&wire.MessageInfo{
		ThreadID:  req.ThreadID,
		MessageID: messageID.String(),
		Timestamp: sendTime,
	})
}

func (h *ServiceHandler) Typing(c iris.Context) {
	session := sessionOf(c)
	var req wire.TypingReq
	if err := c.ReadJSON(&req); err != nil {
		fail(c, iris.StatusBadRequest, err)
		return
	}
	if !h.Directory.Exists(req.ThreadID) {
		fail(c, iris.StatusNotFound, ErrNoThread)
		return
	}
	h.Stream.Deliver(req.ThreadID, &wire.Event{
		Type:      wire.EventTyping,
		ThreadID:  session.ActorID,
		From:      session.ActorID,
		IsTyping:  req.IsTyping,
		Timestamp: time.Now().UnixNano() / int64(time.Millisecond),
	})
	c.JSON(iris.Map{})
}

// History returns the last messages of a thread, oldest first
func (h *ServiceHandler) History(c iris.Context) {
	session := sessionOf(c)
	threadID := c.URLParam("threadID")
	if threadID == "" {
		fail(c, iris.StatusBadRequest, errors.New("threadID is required"))
		return
	}
	limit := c.URLParamIntDefault("limit", DefaultHistoryCount)
	if limit <= 0 || limit > MaxHistoryCount {
		fail(c, iris.StatusBadRequest, errors.Errorf("limit must be in [1,%d]", MaxHistoryCount))
		return
	}
	list, err := h.Messages.List(storage.ThreadKey(session.ActorID, threadID), limit)
	if err != nil {
		fail(c, iris.StatusInternalServerError, err)
		return
	}
	events := make([]*wire.Event, 0, len(list))
	for i := range list {
		events = append(events, toEvent(&list[i], session.ActorID))
	}
	c.JSON(events)
}

// toEvent renders content as seen by viewer; the thread of a one to one
// conversation is the other party
func toEvent(content *storage.MessageContent, viewer string) *wire.Event {
	threadID := content.SenderID
	if viewer == content.SenderID {
		threadID = content.Recipient
	}
	ev := &wire.Event{
		Type:        wire.EventMessage,
		ThreadID:    threadID,
		MessageID:   fmt.Sprint(content.ID),
		SenderID:    content.SenderID,
		Body:        content.Body,
		Attachments: []wire.Attachment{},
		IsGroup:     false,
		Timestamp:   content.SendTime,
	}
	if content.StickerID != "" {
		ev.Attachments = append(ev.Attachments, wire.Attachment{
			Type:      wire.AttachmentSticker,
			StickerID: content.StickerID,
			URL:       fmt.Sprintf("https://chat.example.com/stickers/%s.png", content.StickerID),
		})
	}
	if content.URL != "" {
		ev.Attachments = append(ev.Attachments, wire.Attachment{
			Type: wire.AttachmentShare,
			URL:  content.URL,
		})
	}
	return ev
}

func kindOf(msg wire.Message) string {
	switch {
	case msg.Sticker != "":
		return wire.AttachmentSticker
	case msg.URL != "":
		return wire.AttachmentShare
	default:
		return "text"
	}
}
