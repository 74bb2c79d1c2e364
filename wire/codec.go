package wire

import (
	"encoding/json"

	"github.com/pkg/errors"
)

func MarshalEvent(ev *Event) ([]byte, error) {
	if ev == nil {
		return nil, errors.New("event is nil")
	}
	if ev.Attachments == nil {
		ev.Attachments = []Attachment{}
	}
	return json.Marshal(ev)
}

func UnmarshalEvent(payload []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, errors.Wrap(err, "decode event")
	}
	if ev.Type == "" {
		return nil, errors.Errorf("event without type: %s", payload)
	}
	if ev.Attachments == nil {
		ev.Attachments = []Attachment{}
	}
	return &ev, nil
}
