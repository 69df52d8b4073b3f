// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

func (client *Client) UserProfile(context context.Context, userID string) (*account.Profile, error) {
	return call[*account.Profile](context, client, getRequest(path("/users/%s", userID), nil))
}

func (client *Client) UserByUsername(context context.Context, username string) (*account.Profile, error) {
	return call[*account.Profile](context, client, getRequest(path("/users/by-username/%s", username), nil))
}

func (client *Client) UserStats(context context.Context, userID string) (*account.Stats, error) {
	return call[*account.Stats](context, client, getRequest(path("/users/%s/stats", userID), nil))
}

// UpdateProfile patches the current account. Nil fields are left unchanged.
func (client *Client) UpdateProfile(context context.Context, input account.UpdateProfileInput) (*auth.User, error) {
	return call[*auth.User](context, client, gateway.Request{Method: http.MethodPatch, Path: "/users/me", Body: input})
}

func (client *Client) SearchUsers(context context.Context, term string, params pagination.Params) (Page[*auth.User], error) {
	return callPage[*auth.User](context, client, getRequest("/users/search", searchQuery(term, params)))
}

func (client *Client) RecommendedUsers(context context.Context) ([]*auth.User, error) {
	return call[[]*auth.User](context, client, getRequest("/users/recommended", nil))
}

func (client *Client) UsernameAvailability(context context.Context, username string) (*account.Availability, error) {
	return call[*account.Availability](context, client, getRequest(path("/users/availability/username/%s", username), nil))
}

func (client *Client) EmailAvailability(context context.Context, email string) (*account.Availability, error) {
	return call[*account.Availability](context, client, getRequest(path("/users/availability/email/%s", email), nil))
}
