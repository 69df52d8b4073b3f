// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/uuid"
)

// Service implements the follow use cases.
type Service struct {
	followRepository FollowRepository
	logger           *slog.Logger
}

// NewService constructs a follow [Service].
func NewService(followRepo FollowRepository, logger *slog.Logger) *Service {
	return &Service{followRepository: followRepo, logger: logger}
}

func guard(viewerID, targetID string) error {
	if viewerID == "" {
		return apperr.NotAuthenticated("Authentication required")
	}
	if viewerID == targetID {
		return apperr.SelfFollow()
	}
	return nil
}

func newEdge(viewerID, targetID string) Edge {
	return Edge{ID: uuid.New(), FollowerID: viewerID, FollowingID: targetID}
}

func (service *Service) logChange(event, viewerID, targetID string, change Change) {
	service.logger.Info(event,
		slog.String("follower_id", viewerID),
		slog.String("following_id", targetID),
		slog.Bool("is_following", change.Status.IsFollowing),
	)
}

// # Edge Writes

/*
Toggle follows targetID when viewerID does not follow it yet, and unfollows
otherwise, in one atomic step.

Parameters:
  - context: context.Context
  - viewerID: string
  - targetID: string

Returns:
  - Change: The resulting status and the target's refreshed counters
  - error: NotAuthenticated, SelfFollow, NotFound
*/
func (service *Service) Toggle(context context.Context, viewerID, targetID string) (Change, error) {
	if err := guard(viewerID, targetID); err != nil {
		return Change{}, err
	}

	change, err := service.followRepository.Toggle(context, newEdge(viewerID, targetID))
	if err != nil {
		return Change{}, err
	}

	service.logChange("follow_toggled", viewerID, targetID, change)
	return change, nil
}

// Follow adds viewerID -> targetID. Conflict when the edge exists.
func (service *Service) Follow(context context.Context, viewerID, targetID string) (Change, error) {
	if err := guard(viewerID, targetID); err != nil {
		return Change{}, err
	}

	change, err := service.followRepository.Follow(context, newEdge(viewerID, targetID))
	if err != nil {
		return Change{}, err
	}

	service.logChange("user_followed", viewerID, targetID, change)
	return change, nil
}

// Unfollow removes viewerID -> targetID. NotFound when there is no edge.
func (service *Service) Unfollow(context context.Context, viewerID, targetID string) (Change, error) {
	if err := guard(viewerID, targetID); err != nil {
		return Change{}, err
	}

	change, err := service.followRepository.Unfollow(context, viewerID, targetID)
	if err != nil {
		return Change{}, err
	}

	service.logChange("user_unfollowed", viewerID, targetID, change)
	return change, nil
}

// # Reads

// Status reports the relationship between viewerID and targetID. Anonymous
// viewers and self lookups get an all-false status.
func (service *Service) Status(context context.Context, viewerID, targetID string) (Status, error) {
	status, err := service.followRepository.Status(context, viewerID, targetID)
	if err != nil {
		return Status{}, err
	}
	if viewerID == targetID {
		return Status{}, nil
	}
	return status, nil
}

// Followers returns one page of the accounts following userID.
func (service *Service) Followers(context context.Context, userID string, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit)

	users, total, err := service.followRepository.Followers(context, userID, params)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, pagination.Meta{}, err
		}
		return nil, pagination.Meta{}, fmt.Errorf("follow_service_followers_failed: %w", err)
	}
	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Following returns one page of the accounts userID follows.
func (service *Service) Following(context context.Context, userID string, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit)

	users, total, err := service.followRepository.Following(context, userID, params)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, pagination.Meta{}, err
		}
		return nil, pagination.Meta{}, fmt.Errorf("follow_service_following_failed: %w", err)
	}
	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Mutual lists the accounts both viewerID and targetID follow.
func (service *Service) Mutual(context context.Context, viewerID, targetID string) ([]*auth.User, error) {
	if viewerID == "" {
		return []*auth.User{}, nil
	}
	return service.followRepository.Mutual(context, viewerID, targetID)
}

// Counts returns follower totals computed from the edges themselves.
func (service *Service) Counts(context context.Context, userID string) (Counts, error) {
	return service.followRepository.Counts(context, userID)
}
