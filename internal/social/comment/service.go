// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	commentRepository CommentRepository
	logger            *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(commentRepo CommentRepository, logger *slog.Logger) *Service {
	return &Service{commentRepository: commentRepo, logger: logger}
}

// ListByPost returns the comments of postID, newest first.
func (service *Service) ListByPost(context context.Context, viewerID, postID string) ([]*Comment, error) {
	comments, err := service.commentRepository.ListByPost(context, viewerID, postID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return comments, nil
}

// Get retrieves one comment as seen by viewerID.
func (service *Service) Get(context context.Context, viewerID, id string) (*Comment, error) {
	return service.commentRepository.FindByID(context, viewerID, id)
}

/*
Create adds a comment by authorID.

Parameters:
  - context: context.Context
  - authorID: string
  - input: CreateInput

Returns:
  - *Comment: The new comment with zero likes
  - error: ValidationError, NotFound (post), or storage failures
*/
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (*Comment, error) {
	input.Content = strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldPostID, input.PostID).
		Content(FieldContent, input.Content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment, err := service.commentRepository.Create(context, &Comment{
		ID:       uuid.New(),
		PostID:   input.PostID,
		AuthorID: authorID,
		ParentID: strings.TrimSpace(input.ParentID),
		Content:  input.Content,
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.PostID),
		slog.String("author_id", authorID),
	)

	return comment, nil
}

func (service *Service) authorize(context context.Context, userID, id string) error {
	comment, err := service.commentRepository.FindByID(context, userID, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return apperr.Forbidden("You can only modify your own comments")
	}
	return nil
}

// Update replaces the content of one of userID's comments.
func (service *Service) Update(context context.Context, userID, id, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if err := (&validate.Validator{}).Content(FieldContent, content, MaxContentLength).Err(); err != nil {
		return nil, err
	}

	if err := service.authorize(context, userID, id); err != nil {
		return nil, err
	}

	return service.commentRepository.UpdateContent(context, userID, id, content)
}

// Delete removes one of userID's comments.
func (service *Service) Delete(context context.Context, userID, id string) error {
	if err := service.authorize(context, userID, id); err != nil {
		return err
	}

	if err := service.commentRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", id), slog.String("user_id", userID))

	return nil
}

// ToggleLike flips userID's like on a comment.
func (service *Service) ToggleLike(context context.Context, userID, id string) (*Comment, error) {
	return service.commentRepository.ToggleLike(context, userID, id)
}
