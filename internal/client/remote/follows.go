// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

func (client *Client) FollowStatus(context context.Context, userID string) (follow.Status, error) {
	return call[follow.Status](context, client, getRequest(path("/follows/%s/status", userID), nil))
}

func (client *Client) Follow(context context.Context, userID string) (follow.Change, error) {
	return call[follow.Change](context, client, postRequest(path("/follows/%s", userID), nil))
}

func (client *Client) Unfollow(context context.Context, userID string) (follow.Change, error) {
	return call[follow.Change](context, client, gateway.Request{Method: http.MethodDelete, Path: path("/follows/%s", userID)})
}

// ToggleFollow inverts the viewer's edge to userID in one server-side step.
func (client *Client) ToggleFollow(context context.Context, userID string) (follow.Change, error) {
	return call[follow.Change](context, client, postRequest(path("/follows/%s/toggle", userID), nil))
}

func (client *Client) Followers(context context.Context, userID string, params pagination.Params) (Page[*auth.User], error) {
	return callPage[*auth.User](context, client, getRequest(path("/follows/%s/followers", userID), pageQuery(params)))
}

func (client *Client) Following(context context.Context, userID string, params pagination.Params) (Page[*auth.User], error) {
	return callPage[*auth.User](context, client, getRequest(path("/follows/%s/following", userID), pageQuery(params)))
}

func (client *Client) MutualFollows(context context.Context, userID string) ([]*auth.User, error) {
	return call[[]*auth.User](context, client, getRequest(path("/follows/%s/mutual", userID), nil))
}

func (client *Client) FollowCounts(context context.Context, userID string) (follow.Counts, error) {
	return call[follow.Counts](context, client, getRequest(path("/follows/%s/counts", userID), nil))
}
