// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follows

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// API is the part of the remote client the follows slice calls.
type API interface {
	FollowStatus(context context.Context, userID string) (follow.Status, error)
	Follow(context context.Context, userID string) (follow.Change, error)
	Unfollow(context context.Context, userID string) (follow.Change, error)
	ToggleFollow(context context.Context, userID string) (follow.Change, error)
	Followers(context context.Context, userID string, params pagination.Params) (remote.Page[*auth.User], error)
	Following(context context.Context, userID string, params pagination.Params) (remote.Page[*auth.User], error)
	MutualFollows(context context.Context, userID string) ([]*auth.User, error)
	FollowCounts(context context.Context, userID string) (follow.Counts, error)
}

// UserSink receives the target account with refreshed counters after every
// follow write. The users slice implements it.
type UserSink interface {
	Apply(user *auth.User)
}

// Slice owns the follows state.
type Slice struct {
	store  *state.Store[State, Event]
	api    API
	viewer state.Viewer
	users  UserSink
	logger *slog.Logger
}

// New returns an empty [Slice]. users may be nil.
func New(api API, viewer state.Viewer, users UserSink, logger *slog.Logger) *Slice {
	if viewer == nil {
		viewer = state.Anonymous
	}
	return &Slice{
		store:  state.New(Initial(), Reduce),
		api:    api,
		viewer: viewer,
		users:  users,
		logger: logger,
	}
}

func (slice *Slice) State() State {
	return slice.store.Snapshot()
}

func (slice *Slice) Subscribe(listener state.Listener[State, Event]) {
	slice.store.Subscribe(listener)
}

func (slice *Slice) fail(op Op, err error) error {
	slice.store.Dispatch(Failed{Op: op, Message: state.Message(err, defaultMessages[op])})
	return err
}

// guard rejects writes that the server would refuse anyway.
func (slice *Slice) guard(userID string) error {
	viewerID := slice.viewer()
	if viewerID == "" {
		return apperr.NotAuthenticated("User not authenticated")
	}
	if viewerID == userID {
		return apperr.SelfFollow()
	}
	return nil
}

// # Edge Writes

func (slice *Slice) write(context context.Context, op Op, userID string, call func(API, context.Context, string) (follow.Change, error)) (follow.Status, error) {
	slice.store.Dispatch(Pending{Op: op})

	if err := slice.guard(userID); err != nil {
		return follow.Status{}, slice.fail(op, err)
	}

	change, err := call(slice.api, context, userID)
	if err != nil {
		return follow.Status{}, slice.fail(op, err)
	}

	slice.store.Dispatch(Changed{UserID: userID, Change: change})
	if slice.users != nil && change.User != nil {
		slice.users.Apply(change.User)
	}
	slice.logger.Debug("follows_changed",
		slog.String("op", string(op)),
		slog.String("user_id", userID),
		slog.Bool("following", change.Status.IsFollowing),
	)
	return change.Status, nil
}

/*
ToggleFollow follows userID when the viewer does not, and unfollows otherwise.

The inversion happens in one server-side step, so concurrent toggles never
produce a duplicate edge.

Returns:
  - follow.Status: Relationship after the toggle
  - error: NOT_AUTHENTICATED, SELF_FOLLOW, NOT_FOUND
*/
func (slice *Slice) ToggleFollow(context context.Context, userID string) (follow.Status, error) {
	return slice.write(context, OpToggle, userID, API.ToggleFollow)
}

// Follow fails with CONFLICT when the edge already exists.
func (slice *Slice) Follow(context context.Context, userID string) (follow.Status, error) {
	return slice.write(context, OpFollow, userID, API.Follow)
}

// Unfollow fails with NOT_FOUND when there is no edge.
func (slice *Slice) Unfollow(context context.Context, userID string) (follow.Status, error) {
	return slice.write(context, OpUnfollow, userID, API.Unfollow)
}

// # Bulk Writes

// BulkFollow follows each user in order. Failures are logged and skipped;
// the ids that succeeded are returned.
func (slice *Slice) BulkFollow(context context.Context, userIDs []string) []string {
	return slice.bulk(context, OpFollow, userIDs, slice.Follow)
}

// BulkUnfollow is the inverse of [Slice.BulkFollow].
func (slice *Slice) BulkUnfollow(context context.Context, userIDs []string) []string {
	return slice.bulk(context, OpUnfollow, userIDs, slice.Unfollow)
}

func (slice *Slice) bulk(context context.Context, op Op, userIDs []string, apply func(context.Context, string) (follow.Status, error)) []string {
	succeeded := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		if _, err := apply(context, userID); err != nil {
			slice.logger.Warn("follows_bulk_item_failed",
				slog.String("op", string(op)),
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
			continue
		}
		succeeded = append(succeeded, userID)
	}
	return succeeded
}

// # Reads

// GetFollowStatus returns the viewer's relationship with userID. Anonymous
// viewers and the viewer's own id get all false without a request.
func (slice *Slice) GetFollowStatus(context context.Context, userID string) (follow.Status, error) {
	viewerID := slice.viewer()
	if viewerID == "" || viewerID == userID {
		slice.store.Dispatch(StatusLoaded{UserID: userID})
		return follow.Status{}, nil
	}

	slice.store.Dispatch(Pending{Op: OpStatus})

	status, err := slice.api.FollowStatus(context, userID)
	if err != nil {
		return follow.Status{}, slice.fail(OpStatus, err)
	}

	slice.store.Dispatch(StatusLoaded{UserID: userID, Status: status})
	return status, nil
}

func (slice *Slice) list(op Op, userID string, fetch func() ([]*auth.User, error)) ([]*auth.User, error) {
	slice.store.Dispatch(Pending{Op: op})

	users, err := fetch()
	if err != nil {
		return nil, slice.fail(op, err)
	}

	slice.store.Dispatch(ListLoaded{Op: op, UserID: userID, Users: users})
	return users, nil
}

func (slice *Slice) GetFollowers(context context.Context, userID string, params pagination.Params) ([]*auth.User, error) {
	return slice.list(OpFollowers, userID, func() ([]*auth.User, error) {
		page, err := slice.api.Followers(context, userID, params)
		return page.Items, err
	})
}

func (slice *Slice) GetFollowing(context context.Context, userID string, params pagination.Params) ([]*auth.User, error) {
	return slice.list(OpFollowing, userID, func() ([]*auth.User, error) {
		page, err := slice.api.Following(context, userID, params)
		return page.Items, err
	})
}

// GetMutualFollows lists users both the viewer and userID follow.
func (slice *Slice) GetMutualFollows(context context.Context, userID string) ([]*auth.User, error) {
	return slice.list(OpMutual, userID, func() ([]*auth.User, error) {
		return slice.api.MutualFollows(context, userID)
	})
}

// GetFollowCounts returns counts computed from the edges.
func (slice *Slice) GetFollowCounts(context context.Context, userID string) (follow.Counts, error) {
	slice.store.Dispatch(Pending{Op: OpCounts})

	counts, err := slice.api.FollowCounts(context, userID)
	if err != nil {
		return follow.Counts{}, slice.fail(OpCounts, err)
	}

	slice.store.Dispatch(CountsLoaded{UserID: userID, Counts: counts})
	return counts, nil
}

// ClearFollowData drops everything, typically on logout.
func (slice *Slice) ClearFollowData() {
	slice.store.Dispatch(Cleared{})
}

func (slice *Slice) ClearError() {
	slice.store.Dispatch(ErrorCleared{})
}
