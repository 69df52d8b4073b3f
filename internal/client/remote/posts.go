// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

type contentBody struct {
	Content string `json:"content"`
}

// # Listings

func (client *Client) Feed(context context.Context, params pagination.Params) (Page[*post.Post], error) {
	return callPage[*post.Post](context, client, getRequest("/posts/feed", pageQuery(params)))
}

func (client *Client) Explore(context context.Context, params pagination.Params) (Page[*post.Post], error) {
	return callPage[*post.Post](context, client, getRequest("/posts/explore", pageQuery(params)))
}

func (client *Client) UserPosts(context context.Context, userID string, params pagination.Params) (Page[*post.Post], error) {
	return callPage[*post.Post](context, client, getRequest(path("/posts/by-user/%s", userID), pageQuery(params)))
}

// SearchPosts returns one page of matches; Meta.Total counts every match.
func (client *Client) SearchPosts(context context.Context, term string, params pagination.Params) (Page[*post.Post], error) {
	return callPage[*post.Post](context, client, getRequest("/posts/search", searchQuery(term, params)))
}

// # Single Posts

func (client *Client) Post(context context.Context, postID string) (*post.Post, error) {
	return call[*post.Post](context, client, getRequest(path("/posts/%s", postID), nil))
}

func (client *Client) PostStats(context context.Context, postID string) (*post.Stats, error) {
	return call[*post.Stats](context, client, getRequest(path("/posts/%s/stats", postID), nil))
}

func (client *Client) CreatePost(context context.Context, content string) (*post.Post, error) {
	return call[*post.Post](context, client, postRequest("/posts", contentBody{Content: content}))
}

func (client *Client) UpdatePost(context context.Context, postID, content string) (*post.Post, error) {
	return call[*post.Post](context, client, gateway.Request{
		Method: http.MethodPatch,
		Path:   path("/posts/%s", postID),
		Body:   contentBody{Content: content},
	})
}

func (client *Client) DeletePost(context context.Context, postID string) error {
	return exec(context, client, gateway.Request{Method: http.MethodDelete, Path: path("/posts/%s", postID)})
}

// TogglePostLike flips the viewer's like and returns the updated post.
func (client *Client) TogglePostLike(context context.Context, postID string) (*post.Post, error) {
	return call[*post.Post](context, client, postRequest(path("/posts/%s/like", postID), nil))
}
