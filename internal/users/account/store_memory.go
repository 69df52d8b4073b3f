// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"cmp"
	"context"
	"slices"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/pointer"
	"github.com/taibuivan/yomira-social/pkg/slice"
	"github.com/taibuivan/yomira-social/pkg/textmatch"
)

// MemoryAccountRepository implements [AccountRepository] on the mock data store.
type MemoryAccountRepository struct {
	db *mockdb.DB
}

// NewMemoryAccountRepository creates a mock-store backed [AccountRepository].
func NewMemoryAccountRepository(db *mockdb.DB) *MemoryAccountRepository {
	return &MemoryAccountRepository{db: db}
}

func (repository *MemoryAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	var user *auth.User
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		user = auth.UserFromRow(tables.UserByID(id))
		if user == nil {
			return apperr.NotFound("User")
		}
		return nil
	})
	return user, err
}

func (repository *MemoryAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	var user *auth.User
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		user = auth.UserFromRow(tables.UserByUsername(username))
		if user == nil {
			return apperr.NotFound("User")
		}
		return nil
	})
	return user, err
}

func (repository *MemoryAccountRepository) Relationship(context context.Context, viewerID, targetID string) (Relationship, error) {
	var relationship Relationship
	if viewerID == "" {
		return relationship, nil
	}

	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		relationship = relationshipOf(tables, viewerID, targetID)
		return nil
	})
	return relationship, err
}

// relationshipOf must run inside a store callback.
func relationshipOf(tables *mockdb.Tables, viewerID, targetID string) Relationship {
	relationship := Relationship{
		IsFollowing: tables.FollowEdge(viewerID, targetID) != nil,
		IsFollower:  tables.FollowEdge(targetID, viewerID) != nil,
	}

	for _, edge := range tables.Follows {
		if edge.FollowerID == viewerID && tables.FollowEdge(targetID, edge.FollowingID) != nil {
			relationship.MutualFollows++
		}
	}
	return relationship
}

func (repository *MemoryAccountRepository) Search(context context.Context, query string, params pagination.Params) ([]*auth.User, int, error) {
	matcher := textmatch.New(query)

	var (
		page  []*auth.User
		total int
	)
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		matches := slice.Filter(tables.Users, func(row *mockdb.UserRow) bool {
			return matcher.Any(row.Username, row.FirstName, row.LastName, row.Bio)
		})

		rows, meta := pagination.Slice(matches, params)
		page = slice.Map(rows, auth.UserFromRow)
		total = meta.Total
		return nil
	})
	if page == nil {
		page = []*auth.User{}
	}
	return page, total, err
}

func (repository *MemoryAccountRepository) Recommended(context context.Context, viewerID string, limit int) ([]*auth.User, error) {
	var users []*auth.User
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		candidates := slice.Filter(tables.Users, func(row *mockdb.UserRow) bool {
			return row.ID != viewerID && tables.FollowEdge(viewerID, row.ID) == nil
		})

		slices.SortStableFunc(candidates, func(a, b *mockdb.UserRow) int {
			return cmp.Compare(b.FollowersCount, a.FollowersCount)
		})

		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		users = slice.Map(candidates, auth.UserFromRow)
		return nil
	})
	if users == nil {
		users = []*auth.User{}
	}
	return users, err
}

func (repository *MemoryAccountRepository) Stats(context context.Context, userID string) (*Stats, error) {
	var stats *Stats
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		user := tables.UserByID(userID)
		if user == nil {
			return apperr.NotFound("User")
		}

		stats = &Stats{
			PostsCount:     user.PostsCount,
			FollowersCount: user.FollowersCount,
			FollowingCount: user.FollowingCount,
		}
		for _, post := range tables.Posts {
			if post.AuthorID == userID {
				stats.LikesReceived += post.LikesCount
				stats.CommentsReceived += post.CommentsCount
			}
		}
		return nil
	})
	return stats, err
}

func (repository *MemoryAccountRepository) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	var user *auth.User
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.UserByID(userID)
		if row == nil {
			return apperr.NotFound("User")
		}

		row.FirstName = pointer.Fallback(input.FirstName, row.FirstName)
		row.LastName = pointer.Fallback(input.LastName, row.LastName)
		row.Bio = pointer.Fallback(input.Bio, row.Bio)
		row.Avatar = pointer.Fallback(input.Avatar, row.Avatar)
		row.UpdatedAt = repository.db.Now()

		user = auth.UserFromRow(row)
		return nil
	})
	return user, err
}

func (repository *MemoryAccountRepository) UsernameTaken(context context.Context, username string) (bool, error) {
	var taken bool
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		taken = tables.UserByUsername(username) != nil
		return nil
	})
	return taken, err
}

func (repository *MemoryAccountRepository) EmailTaken(context context.Context, email string) (bool, error) {
	var taken bool
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		taken = tables.UserByEmail(email) != nil
		return nil
	})
	return taken, err
}
