// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/uuid"
)

// Service implements the post use cases.
type Service struct {
	postRepository PostRepository
	logger         *slog.Logger
}

// NewService constructs a post [Service].
func NewService(postRepo PostRepository, logger *slog.Logger) *Service {
	return &Service{postRepository: postRepo, logger: logger}
}

// # Listings

func (service *Service) list(context context.Context, viewerID string, filter Filter, params pagination.Params) ([]*Post, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit)

	posts, total, err := service.postRepository.List(context, viewerID, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_failed: %w", err)
	}

	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Feed lists every post newest first.

Parameters:
  - context: context.Context
  - viewerID: string (empty for anonymous)
  - params: pagination.Params

Returns:
  - []*Post: One page
  - pagination.Meta: hasNextPage and nextCursor describe the following page
  - error: Storage failures
*/
func (service *Service) Feed(context context.Context, viewerID string, params pagination.Params) ([]*Post, pagination.Meta, error) {
	return service.list(context, viewerID, Filter{Ordering: ByRecency}, params)
}

// Explore lists every post, most liked first.
func (service *Service) Explore(context context.Context, viewerID string, params pagination.Params) ([]*Post, pagination.Meta, error) {
	return service.list(context, viewerID, Filter{Ordering: ByLikes}, params)
}

// UserPosts lists the posts of authorID, newest first.
func (service *Service) UserPosts(context context.Context, viewerID, authorID string, params pagination.Params) ([]*Post, pagination.Meta, error) {
	return service.list(context, viewerID, Filter{AuthorID: authorID, Ordering: ByRecency}, params)
}

/*
Search matches query against content and the author's username and names.

Description: A blank query matches nothing.

Parameters:
  - context: context.Context
  - viewerID: string
  - query: string
  - params: pagination.Params

Returns:
  - []*Post: One page in store order
  - pagination.Meta: Total carries the full match count
  - error: Storage failures
*/
func (service *Service) Search(context context.Context, viewerID, query string, params pagination.Params) ([]*Post, pagination.Meta, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		params = params.Normalize(pagination.DefaultLimit)
		return []*Post{}, pagination.NewMeta(params.Page, params.Limit, 0), nil
	}

	return service.list(context, viewerID, Filter{Query: query, Ordering: InStoreOrder}, params)
}

// # Single Post

// Get retrieves one post as seen by viewerID.
func (service *Service) Get(context context.Context, viewerID, id string) (*Post, error) {
	return service.postRepository.FindByID(context, viewerID, id)
}

// Stats returns the engagement summary of a post. Shares are not tracked.
func (service *Service) Stats(context context.Context, id string) (*Stats, error) {
	post, err := service.postRepository.FindByID(context, "", id)
	if err != nil {
		return nil, err
	}

	return &Stats{LikesCount: post.LikesCount, CommentsCount: post.CommentsCount}, nil
}

// # Mutations

func validateContent(content string) error {
	return (&validate.Validator{}).Content(FieldContent, content, constants.MaxPostLength).Err()
}

/*
Create publishes a new post for authorID.

Parameters:
  - context: context.Context
  - authorID: string
  - content: string (1 to 280 characters after trimming)

Returns:
  - *Post: The new post with zeroed counters
  - err: ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, authorID, content string) (*Post, error) {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	post, err := service.postRepository.Create(context, &Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	service.logger.Info("post_created", slog.String("post_id", post.ID), slog.String("author_id", authorID))

	return post, nil
}

// authorize loads the post and requires userID to be its author.
func (service *Service) authorize(context context.Context, userID, id string) error {
	post, err := service.postRepository.FindByID(context, userID, id)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return apperr.Forbidden("You can only modify your own posts")
	}
	return nil
}

/*
Update replaces the content of one of userID's posts.

Parameters:
  - context: context.Context
  - userID: string
  - id: string
  - content: string

Returns:
  - *Post: The post with a new version and updatedAt
  - err: ValidationError, NotFound, Forbidden, or storage failures
*/
func (service *Service) Update(context context.Context, userID, id, content string) (*Post, error) {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if err := service.authorize(context, userID, id); err != nil {
		return nil, err
	}

	post, err := service.postRepository.UpdateContent(context, userID, id, content)
	if err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", id), slog.Int64("version", post.Version))

	return post, nil
}

// Delete removes one of userID's posts. Its comments stay in the store.
func (service *Service) Delete(context context.Context, userID, id string) error {
	if err := service.authorize(context, userID, id); err != nil {
		return err
	}

	if err := service.postRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("post_deleted", slog.String("post_id", id), slog.String("user_id", userID))

	return nil
}

// ToggleLike flips userID's like on a post.
func (service *Service) ToggleLike(context context.Context, userID, id string) (*Post, error) {
	post, err := service.postRepository.ToggleLike(context, userID, id)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("post_like_toggled",
		slog.String("post_id", id),
		slog.String("user_id", userID),
		slog.Bool("liked", post.IsLiked),
	)

	return post, nil
}
