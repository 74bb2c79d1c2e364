package client

import (
	"context"
	"strconv"

	"chatapi/iface"
	"chatapi/wire"

	"github.com/pkg/errors"
)

// Text is the basic string form of a message
func Text(body string) wire.Message {
	return wire.Message{Body: body}
}

// Sticker sends a sticker by id
func Sticker(id string) wire.Message {
	return wire.Message{Sticker: id}
}

func (a *API) SendMessage(ctx context.Context, msg wire.Message, threadID string) (*wire.MessageInfo, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	if msg.Empty() {
		return nil, iface.ErrEmptyMessage
	}
	if threadID == "" {
		return nil, errors.New("thread id is required")
	}
	resp, err := a.request(ctx).
		SetBody(&wire.SendMessageReq{ThreadID: threadID, Message: msg}).
		SetResult(&wire.MessageInfo{}).
		Post(wire.PathMessages)
	if err = check(resp, err); err != nil {
		return nil, errors.Wrapf(err, "send message to %s", threadID)
	}
	info := resp.Result().(*wire.MessageInfo)
	a.log.WithField("thread", threadID).Debugf("message %s sent", info.MessageID)
	return info, nil
}

// SendText sends body as a plain string message
func (a *API) SendText(ctx context.Context, body string, threadID string) (*wire.MessageInfo, error) {
	return a.SendMessage(ctx, Text(body), threadID)
}

// SendTypingIndicator shows the typing indicator in threadID until the
// returned func is called
func (a *API) SendTypingIndicator(ctx context.Context, threadID string) (iface.StopFunc, error) {
	if err := a.typing(ctx, threadID, true); err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return a.typing(ctx, threadID, false)
	}, nil
}

func (a *API) typing(ctx context.Context, threadID string, isTyping bool) error {
	if err := a.ready(); err != nil {
		return err
	}
	if threadID == "" {
		return errors.New("thread id is required")
	}
	resp, err := a.request(ctx).
		SetBody(&wire.TypingReq{ThreadID: threadID, IsTyping: isTyping}).
		Post(wire.PathTyping)
	return errors.Wrap(check(resp, err), "typing indicator")
}

// GetThreadHistory returns up to amount of the latest messages in threadID,
// oldest first
func (a *API) GetThreadHistory(ctx context.Context, threadID string, amount int) ([]*wire.Event, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	var events []*wire.Event
	resp, err := a.request(ctx).
		SetQueryParam("threadID", threadID).
		SetQueryParam("limit", strconv.Itoa(amount)).
		SetResult(&events).
		Get(wire.PathMessages)
	if err = check(resp, err); err != nil {
		return nil, errors.Wrapf(err, "history of %s", threadID)
	}
	return events, nil
}
