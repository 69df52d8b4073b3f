// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"cmp"
	"context"
	"slices"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/slice"
	"github.com/taibuivan/yomira-social/pkg/textmatch"
)

// MemoryPostRepository implements [PostRepository] on the mock data store.
type MemoryPostRepository struct {
	db *mockdb.DB
}

// NewMemoryPostRepository creates a mock-store backed [PostRepository].
func NewMemoryPostRepository(db *mockdb.DB) *MemoryPostRepository {
	return &MemoryPostRepository{db: db}
}

// fromRow must run inside a store callback.
func fromRow(tables *mockdb.Tables, row *mockdb.PostRow, viewerID string) *Post {
	return &Post{
		ID:            row.ID,
		AuthorID:      row.AuthorID,
		Author:        auth.UserFromRow(tables.UserByID(row.AuthorID)),
		Content:       row.Content,
		LikesCount:    row.LikesCount,
		CommentsCount: row.CommentsCount,
		IsLiked:       tables.IsLiked(mockdb.LikePost, row.ID, viewerID),
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func (repository *MemoryPostRepository) List(context context.Context, viewerID string, filter Filter, params pagination.Params) ([]*Post, int, error) {
	matcher := textmatch.New(filter.Query)

	var (
		posts []*Post
		total int
	)
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		rows := slice.Filter(tables.Posts, func(row *mockdb.PostRow) bool {
			if filter.AuthorID != "" && row.AuthorID != filter.AuthorID {
				return false
			}
			if filter.Query == "" {
				return true
			}
			author := tables.UserByID(row.AuthorID)
			if author == nil {
				return matcher.Any(row.Content)
			}
			return matcher.Any(row.Content, author.Username, author.FirstName, author.LastName)
		})

		sortRows(rows, filter.Ordering)

		page, meta := pagination.Slice(rows, params)
		posts = slice.Map(page, func(row *mockdb.PostRow) *Post { return fromRow(tables, row, viewerID) })
		total = meta.Total
		return nil
	})
	if posts == nil {
		posts = []*Post{}
	}
	return posts, total, err
}

// sortRows orders rows in place. Stable sorts keep store order on ties.
func sortRows(rows []*mockdb.PostRow, ordering Ordering) {
	byRecency := func(a, b *mockdb.PostRow) int { return b.CreatedAt.Compare(a.CreatedAt) }

	switch ordering {
	case ByRecency:
		slices.SortStableFunc(rows, byRecency)
	case ByLikes:
		slices.SortStableFunc(rows, byRecency)
		slices.SortStableFunc(rows, func(a, b *mockdb.PostRow) int { return cmp.Compare(b.LikesCount, a.LikesCount) })
	}
}

func (repository *MemoryPostRepository) FindByID(context context.Context, viewerID, id string) (*Post, error) {
	var post *Post
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		row := tables.PostByID(id)
		if row == nil {
			return apperr.NotFound("Post")
		}
		post = fromRow(tables, row, viewerID)
		return nil
	})
	return post, err
}

func (repository *MemoryPostRepository) Create(context context.Context, post *Post) (*Post, error) {
	var created *Post
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		author := tables.UserByID(post.AuthorID)
		if author == nil {
			return apperr.NotFound("User")
		}

		now := repository.db.Now()
		row := &mockdb.PostRow{
			ID:        post.ID,
			AuthorID:  post.AuthorID,
			Content:   post.Content,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		tables.PrependPost(row)
		author.PostsCount++

		created = fromRow(tables, row, post.AuthorID)
		return nil
	})
	return created, err
}

func (repository *MemoryPostRepository) UpdateContent(context context.Context, viewerID, id, content string) (*Post, error) {
	var updated *Post
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.PostByID(id)
		if row == nil {
			return apperr.NotFound("Post")
		}

		row.Content = content
		row.UpdatedAt = repository.db.Now()
		row.Version++

		updated = fromRow(tables, row, viewerID)
		return nil
	})
	return updated, err
}

func (repository *MemoryPostRepository) Delete(context context.Context, id string) error {
	return repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.PostByID(id)
		if row == nil {
			return apperr.NotFound("Post")
		}

		if author := tables.UserByID(row.AuthorID); author != nil {
			author.PostsCount = mockdb.Adjust(author.PostsCount, -1)
		}
		tables.RemovePost(id)
		return nil
	})
}

func (repository *MemoryPostRepository) ToggleLike(context context.Context, userID, id string) (*Post, error) {
	var toggled *Post
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.PostByID(id)
		if row == nil {
			return apperr.NotFound("Post")
		}

		liked := !tables.IsLiked(mockdb.LikePost, id, userID)
		tables.SetLiked(mockdb.LikePost, id, userID, liked)

		delta := -1
		if liked {
			delta = 1
		}
		row.LikesCount = mockdb.Adjust(row.LikesCount, delta)
		row.Version++

		toggled = fromRow(tables, row, userID)
		return nil
	})
	return toggled, err
}
