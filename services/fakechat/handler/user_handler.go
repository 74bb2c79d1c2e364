package handler

import (
	"strings"

	"chatapi/wire"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
)

func (h *ServiceHandler) Users(c iris.Context) {
	session := sessionOf(c)
	ids := splitIDs(c.URLParam("ids"))
	if len(ids) == 0 {
		fail(c, iris.StatusBadRequest, errors.New("ids is required"))
		return
	}
	result := make(map[string]wire.UserInfo, len(ids))
	for _, id := range ids {
		if info, ok := h.Directory.Profile(session.UserID, id); ok {
			result[id] = info
		}
	}
	c.JSON(result)
}

func (h *ServiceHandler) Friends(c iris.Context) {
	session := sessionOf(c)
	c.JSON(h.Directory.Friends(session.UserID))
}

func splitIDs(raw string) []string {
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
