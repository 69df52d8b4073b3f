// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/social/comment"
)

// PostComments returns the comments of postID, newest first.
func (client *Client) PostComments(context context.Context, postID string) ([]*comment.Comment, error) {
	return call[[]*comment.Comment](context, client, getRequest(path("/comments/post/%s", postID), nil))
}

func (client *Client) Comment(context context.Context, commentID string) (*comment.Comment, error) {
	return call[*comment.Comment](context, client, getRequest(path("/comments/%s", commentID), nil))
}

func (client *Client) CreateComment(context context.Context, input comment.CreateInput) (*comment.Comment, error) {
	return call[*comment.Comment](context, client, postRequest("/comments", input))
}

func (client *Client) UpdateComment(context context.Context, commentID, content string) (*comment.Comment, error) {
	return call[*comment.Comment](context, client, gateway.Request{
		Method: http.MethodPatch,
		Path:   path("/comments/%s", commentID),
		Body:   contentBody{Content: content},
	})
}

func (client *Client) DeleteComment(context context.Context, commentID string) error {
	return exec(context, client, gateway.Request{Method: http.MethodDelete, Path: path("/comments/%s", commentID)})
}

func (client *Client) ToggleCommentLike(context context.Context, commentID string) (*comment.Comment, error) {
	return call[*comment.Comment](context, client, postRequest(path("/comments/%s/like", commentID), nil))
}
