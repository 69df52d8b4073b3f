// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/slice"
)

// MemoryFollowRepository implements [FollowRepository] on the mock data store.
type MemoryFollowRepository struct {
	db *mockdb.DB
}

// NewMemoryFollowRepository creates a mock-store backed [FollowRepository].
func NewMemoryFollowRepository(db *mockdb.DB) *MemoryFollowRepository {
	return &MemoryFollowRepository{db: db}
}

// # Edge Writes

func accounts(tables *mockdb.Tables, followerID, followingID string) (*mockdb.UserRow, *mockdb.UserRow, error) {
	follower := tables.UserByID(followerID)
	target := tables.UserByID(followingID)
	if follower == nil || target == nil {
		return nil, nil, apperr.NotFound("User")
	}
	return follower, target, nil
}

func (repository *MemoryFollowRepository) link(tables *mockdb.Tables, edge Edge, follower, target *mockdb.UserRow) {
	tables.Follows = append(tables.Follows, &mockdb.FollowRow{
		ID:          edge.ID,
		FollowerID:  edge.FollowerID,
		FollowingID: edge.FollowingID,
		CreatedAt:   repository.db.Now(),
	})
	follower.FollowingCount++
	target.FollowersCount++
}

func unlink(tables *mockdb.Tables, follower, target *mockdb.UserRow) {
	tables.RemoveFollow(follower.ID, target.ID)
	follower.FollowingCount = mockdb.Adjust(follower.FollowingCount, -1)
	target.FollowersCount = mockdb.Adjust(target.FollowersCount, -1)
}

func statusOf(tables *mockdb.Tables, viewerID, targetID string) Status {
	if viewerID == "" {
		return Status{}
	}
	return NewStatus(tables.FollowEdge(viewerID, targetID) != nil, tables.FollowEdge(targetID, viewerID) != nil)
}

func changeOf(tables *mockdb.Tables, follower, target *mockdb.UserRow) Change {
	return Change{Status: statusOf(tables, follower.ID, target.ID), User: auth.UserFromRow(target)}
}

func (repository *MemoryFollowRepository) Follow(context context.Context, edge Edge) (Change, error) {
	var change Change
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		follower, target, err := accounts(tables, edge.FollowerID, edge.FollowingID)
		if err != nil {
			return err
		}
		if tables.FollowEdge(edge.FollowerID, edge.FollowingID) != nil {
			return apperr.Conflict("Already following")
		}

		repository.link(tables, edge, follower, target)
		change = changeOf(tables, follower, target)
		return nil
	})
	return change, err
}

func (repository *MemoryFollowRepository) Unfollow(context context.Context, followerID, followingID string) (Change, error) {
	var change Change
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		follower, target, err := accounts(tables, followerID, followingID)
		if err != nil {
			return err
		}
		if tables.FollowEdge(followerID, followingID) == nil {
			return apperr.NotFound("Not following")
		}

		unlink(tables, follower, target)
		change = changeOf(tables, follower, target)
		return nil
	})
	return change, err
}

func (repository *MemoryFollowRepository) Toggle(context context.Context, edge Edge) (Change, error) {
	var change Change
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		follower, target, err := accounts(tables, edge.FollowerID, edge.FollowingID)
		if err != nil {
			return err
		}

		if tables.FollowEdge(edge.FollowerID, edge.FollowingID) != nil {
			unlink(tables, follower, target)
		} else {
			repository.link(tables, edge, follower, target)
		}

		change = changeOf(tables, follower, target)
		return nil
	})
	return change, err
}

// # Reads

func (repository *MemoryFollowRepository) Status(context context.Context, viewerID, targetID string) (Status, error) {
	var status Status
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		if tables.UserByID(targetID) == nil {
			return apperr.NotFound("User")
		}
		status = statusOf(tables, viewerID, targetID)
		return nil
	})
	return status, err
}

// neighbours resolves one side of every edge matching keep, in edge order.
func neighbours(tables *mockdb.Tables, keep func(*mockdb.FollowRow) bool, pick func(*mockdb.FollowRow) string) []*auth.User {
	users := []*auth.User{}
	for _, edge := range slice.Filter(tables.Follows, keep) {
		if row := tables.UserByID(pick(edge)); row != nil {
			users = append(users, auth.UserFromRow(row))
		}
	}
	return users
}

func (repository *MemoryFollowRepository) page(context context.Context, userID string, params pagination.Params, keep func(*mockdb.FollowRow) bool, pick func(*mockdb.FollowRow) string) ([]*auth.User, int, error) {
	var (
		users []*auth.User
		total int
	)
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		if tables.UserByID(userID) == nil {
			return apperr.NotFound("User")
		}
		all := neighbours(tables, keep, pick)
		users, _ = pagination.Slice(all, params)
		total = len(all)
		return nil
	})
	return users, total, err
}

func (repository *MemoryFollowRepository) Followers(context context.Context, userID string, params pagination.Params) ([]*auth.User, int, error) {
	return repository.page(context, userID, params,
		func(edge *mockdb.FollowRow) bool { return edge.FollowingID == userID },
		func(edge *mockdb.FollowRow) string { return edge.FollowerID },
	)
}

func (repository *MemoryFollowRepository) Following(context context.Context, userID string, params pagination.Params) ([]*auth.User, int, error) {
	return repository.page(context, userID, params,
		func(edge *mockdb.FollowRow) bool { return edge.FollowerID == userID },
		func(edge *mockdb.FollowRow) string { return edge.FollowingID },
	)
}

func (repository *MemoryFollowRepository) Mutual(context context.Context, viewerID, targetID string) ([]*auth.User, error) {
	users := []*auth.User{}
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		if tables.UserByID(targetID) == nil {
			return apperr.NotFound("User")
		}
		users = neighbours(tables,
			func(edge *mockdb.FollowRow) bool {
				return edge.FollowerID == viewerID && tables.FollowEdge(targetID, edge.FollowingID) != nil
			},
			func(edge *mockdb.FollowRow) string { return edge.FollowingID },
		)
		return nil
	})
	return users, err
}

func (repository *MemoryFollowRepository) Counts(context context.Context, userID string) (Counts, error) {
	var counts Counts
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		if tables.UserByID(userID) == nil {
			return apperr.NotFound("User")
		}
		for _, edge := range tables.Follows {
			if edge.FollowingID == userID {
				counts.Followers++
			}
			if edge.FollowerID == userID {
				counts.Following++
			}
		}
		return nil
	})
	return counts, err
}
