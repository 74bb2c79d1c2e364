package client

import (
	"context"
	"strings"

	"chatapi/wire"

	"github.com/pkg/errors"
)

// GetUserInfo returns the profiles of ids keyed by id; unknown ids are absent
func (a *API) GetUserInfo(ctx context.Context, ids ...string) (map[string]wire.UserInfo, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.New("at least one id is required")
	}
	result := make(map[string]wire.UserInfo, len(ids))
	resp, err := a.request(ctx).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetResult(&result).
		Get(wire.PathUsers)
	if err = check(resp, err); err != nil {
		return nil, errors.Wrap(err, "user info")
	}
	return result, nil
}

func (a *API) GetFriendsList(ctx context.Context) ([]wire.Friend, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	friends := make([]wire.Friend, 0)
	resp, err := a.request(ctx).
		SetResult(&friends).
		Get(wire.PathFriends)
	if err = check(resp, err); err != nil {
		return nil, errors.Wrap(err, "friends list")
	}
	return friends, nil
}
